package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/identity"
)

var errNotConfirmed = errors.New("refusing to delete progress without --yes")

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored progress for the current player",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return errNotConfirmed
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			key := identity.Key(e.players)
			if err := e.repo.Reset(cmd.Context(), key); err != nil {
				return fmt.Errorf("reset %s: %w", key, err)
			}
			e.log.Info("progress reset", "identity", key)
			fmt.Fprintf(out(cmd), "Deleted all progress for %s.\n", identity.Display(e.players))
			return nil
		},
	}
	c.Flags().Bool("yes", false, "confirm deletion")
	return c
}
