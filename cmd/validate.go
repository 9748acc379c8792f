package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solevolog/solevolog/internal/validator"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a tarot deck directory",
		Long: `Validate checks that a deck directory can be used as a card catalog.
It verifies deck.toml, card names for the declared locales, card meanings,
image coverage, and that the deck yields the full 78-card catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]
			out := cmd.OutOrStdout()

			if _, err := os.Stat(deckPath); os.IsNotExist(err) {
				return fmt.Errorf("deck directory not found: %s", deckPath)
			}

			results, err := validator.NewValidator(deckPath, a.logger).Validate()
			if err != nil {
				return fmt.Errorf("validation error: %w", err)
			}

			fmt.Fprintln(out, "Validation Results:")
			fmt.Fprintln(out, "-------------------")

			if results.Valid() {
				fmt.Fprintf(out, "✅ Deck '%s' is valid.\n", deckPath)
			} else {
				fmt.Fprintf(out, "❌ Deck '%s' has %d validation errors:\n", deckPath, len(results.Errors))
				for i, err := range results.Errors {
					fmt.Fprintf(out, "%d. %s\n", i+1, err)
				}
			}

			if len(results.Warnings) > 0 {
				fmt.Fprintln(out, "\nWarnings:")
				for i, warn := range results.Warnings {
					fmt.Fprintf(out, "%d. %s\n", i+1, warn)
				}
			}

			if !results.Valid() {
				return errValidationFailed
			}
			return nil
		},
	}
}
