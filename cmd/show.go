package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/config"
	"github.com/solevolog/solevolog/internal/render"
)

func newShowCmd(a *app) *cobra.Command {
	var deckName string

	showCmd := &cobra.Command{
		Use:   "show [card_id]",
		Short: "Display information about a specific card",
		Long: `Show displays a tarot card: both names, keywords, and the upright and
reversed meanings, with ANSI art when the deck has a local image.
Use canonical card IDs like 'major_arcana.00' or 'minor_arcana.wands.ace'.

Examples:
  solevolog show major_arcana.00
  solevolog show --deck ./custom-deck minor_arcana.wands.ace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDeck(deckName)
			if err != nil {
				return fmt.Errorf("error loading deck: %w", err)
			}

			c, ok := findCard(d.Cards, args[0])
			if !ok {
				return fmt.Errorf("card not found: %s", args[0])
			}

			art, err := render.ArtCache{Dir: config.GetCacheDir()}.Art(d.Path, c)
			if err != nil {
				// Art is decoration; show the card without it.
				a.logger.Warn("Could not render card art", zap.String("card", c.ID), zap.Error(err))
			}

			render.New(cmd.OutOrStdout()).Card(c, art, d.Name)
			return nil
		},
	}
	showCmd.Flags().StringVarP(&deckName, "deck", "d", "", "Specify a deck from your deck library or a path to a deck")
	return showCmd
}

func findCard(cards []card.Card, id string) (card.Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return card.Card{}, false
}
