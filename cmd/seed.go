package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var deckName, db string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the card catalog in the database",
		Long: `Seed writes the 78 cards of a deck to the database catalog. A catalog
that already holds cards is left unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(deckName)
			if err != nil {
				return fmt.Errorf("error loading deck: %w", err)
			}

			s, err := a.openStore(db)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.SeedCards(cmd.Context(), d.Cards)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog in %s is already seeded\n", s.Path())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d cards from %s into %s\n", n, d.ID, s.Path())
			return nil
		},
	}
	seedCmd.Flags().StringVarP(&deckName, "deck", "d", "", "Deck from your deck library or a path to a deck")
	seedCmd.Flags().StringVar(&db, "db", "", "Database path (default from config)")
	return seedCmd
}
