package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/McNamara84/ernie-go/datacite"
)

var (
	validateInput  string
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a DataCite JSON document",
	Long: `Validate a DataCite JSON document against the 4.6 schema rules.

All violations are collected in one pass and printed together. With
--strict the document must also carry an identifiers array, the
readiness bar for registry submission.

Input defaults to stdin.

Examples:
  ernie validate -i record.json
  ernie validate -i record.json --strict
  cat record.json | ernie validate`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Input file (default: stdin)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Require identifiers (registration readiness)")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var input io.Reader
	inputName := "stdin"
	if validateInput != "" {
		f, openErr := os.Open(validateInput)
		if openErr != nil {
			return fmt.Errorf("opening input file: %w", openErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = validateInput
	} else {
		input = os.Stdin
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	validator := datacite.NewValidator(registry)
	if err := validator.Validate(data, validateStrict); err != nil {
		var failure *datacite.ValidationFailure
		if !errors.As(err, &failure) {
			return err
		}
		fmt.Printf("✗ Invalid: %d violation(s) against schema %s in %s\n",
			len(failure.Violations), failure.SchemaVersion, inputName)
		for _, v := range failure.Violations {
			fmt.Printf("  %s: %s [%s]\n", v.Path, v.Message, v.Keyword)
		}
		os.Exit(1)
	}

	fmt.Printf("✓ Valid: %s conforms to schema %s\n", inputName, datacite.Version)
	return nil
}
