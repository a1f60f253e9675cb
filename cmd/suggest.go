package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/McNamara84/ernie-go/doi"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [last-doi]",
	Short: "Suggest the next free DOI",
	Long: `Suggest the next free DOI in an institutional numbering series.

The suffix of the given DOI is classified against the known series
shapes, its trailing number incremented with the original zero-padding,
and candidates already taken in the store are skipped. Without an
argument the series continues from the most recently stored DOI.

Examples:
  ernie suggest 10.5880/GFZ.2023.041
  ernie suggest --config ernie.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()

	suggester := doi.NewSuggester(st)

	var suggestion string
	if len(args) == 1 {
		suggestion, err = suggester.SuggestNext(args[0])
		if err != nil {
			return err
		}
		if suggestion == "" {
			return fmt.Errorf("%q is not a valid DOI", args[0])
		}
	} else {
		suggestion, err = suggester.SuggestFromLastAssigned()
		if err != nil {
			return err
		}
		if suggestion == "" {
			return fmt.Errorf("no DOI assigned yet; pass one to continue a series")
		}
	}

	fmt.Println(suggestion)
	return nil
}
