package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solevolog/solevolog/internal/render"
	"github.com/solevolog/solevolog/internal/store"
)

func newSessionCmd(a *app) *cobra.Command {
	var db string

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect spreads recorded in the database",
	}
	sessionCmd.PersistentFlags().StringVar(&db, "db", "", "Database path (default from config)")

	listCmd := &cobra.Command{
		Use:   "ls",
		Short: "List sessions with recorded spreads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(db)
			if err != nil {
				return err
			}
			defer s.Close()

			sessions, err := s.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions recorded.")
				return nil
			}
			for _, sum := range sessions {
				fmt.Fprintf(out, "%s  %2d cards  %s", sum.SessionID, sum.Cards, sum.CreatedAt.Local().Format(time.DateTime))
				if sum.Question != "" {
					fmt.Fprintf(out, "  %q", sum.Question)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cardsCmd := &cobra.Command{
		Use:   "cards [session_id]",
		Short: "Show the spread recorded for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(db)
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := s.ListSessionCards(ctx, args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no cards recorded for session %s", args[0])
			}

			names := map[string]string{}
			for _, row := range rows {
				c, err := s.GetCard(ctx, row.CardID)
				if errors.Is(err, store.ErrCardNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				names[c.ID] = c.NamePrimary
			}

			question, err := s.Question(ctx, args[0])
			if err != nil {
				return err
			}
			render.New(cmd.OutOrStdout()).SessionCards(args[0], question, rows, names)
			return nil
		},
	}

	sessionCmd.AddCommand(listCmd, cardsCmd)
	return sessionCmd
}
