package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/app"
	"github.com/abhisek/geodrill/internal/quiz"
)

// runApp sets up the backend and launches the TUI. A non-empty variant
// opens that trainer straight away.
func runApp(cmd *cobra.Command, variant quiz.Variant) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := e.catalog()
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Catalog:      cat,
		Repo:         e.repo,
		Players:      e.players,
		Logger:       e.log,
		Seed:         e.cfg.Seed,
		StartVariant: variant,
	})
}
