package main

import (
	"github.com/McNamara84/ernie-go/cmd"
)

func main() {
	cmd.Execute()
}
