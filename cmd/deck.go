package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/catalog"
	"github.com/solevolog/solevolog/internal/config"
)

func newDeckCmd(a *app) *cobra.Command {
	deckCmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage tarot decks in your deck library",
		Long:  `Commands for managing tarot decks in your deck library.`,
	}
	deckCmd.AddCommand(newDeckListCmd(a), newDeckSetDefaultCmd(a), newDeckInitCmd(a))
	return deckCmd
}

func newDeckListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List available decks in your deck library",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			defaultDeck := a.config.DefaultDeck

			printDeck := func(name, title string) {
				if name == defaultDeck {
					fmt.Fprintf(out, "* %s (%s) [DEFAULT]\n", name, title)
				} else {
					fmt.Fprintf(out, "  %s (%s)\n", name, title)
				}
			}

			libraryPath := config.GetDeckLibraryPath()
			entries, err := os.ReadDir(libraryPath)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("error reading deck library: %w", err)
			}

			builtinShadowed := false
			for _, entry := range entries {
				entryPath := filepath.Join(libraryPath, entry.Name())
				// Follow symlinked decks.
				info, err := os.Stat(entryPath)
				if err != nil || !info.IsDir() {
					continue
				}
				d, err := catalog.LoadDir(entryPath, a.logger)
				if err != nil {
					a.logger.Debug("Skipping invalid deck", zap.String("path", entryPath), zap.Error(err))
					continue
				}
				if entry.Name() == config.DefaultDeck {
					builtinShadowed = true
				}
				printDeck(entry.Name(), d.Name)
			}

			if !builtinShadowed {
				d, err := catalog.NewEmbedded(a.logger).Deck()
				if err != nil {
					return err
				}
				printDeck(config.DefaultDeck, d.Name+", built-in")
			}
			if len(entries) == 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "You can add decks by copying them to:", libraryPath)
			}
			return nil
		},
	}
}

func newDeckSetDefaultCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default [deck_name]",
		Short: "Set the default deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckName := args[0]

			// Make sure the deck loads before recording it.
			if _, err := a.loadDeck(deckName); err != nil {
				return fmt.Errorf("not a valid deck: %w", err)
			}
			if err := config.SetDefaultDeck(deckName); err != nil {
				return fmt.Errorf("error setting default deck: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
			return nil
		},
	}
}

func newDeckInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the deck library",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			libraryPath := config.GetDeckLibraryPath()

			if err := os.MkdirAll(libraryPath, 0755); err != nil {
				return fmt.Errorf("error creating deck library: %w", err)
			}

			fmt.Fprintln(out, "Deck library initialized at:", libraryPath)
			fmt.Fprintln(out, "You can now add decks by copying them to this directory.")
			fmt.Fprintln(out, "Config file at:", config.GetConfigFilePath())
			return nil
		},
	}
}
