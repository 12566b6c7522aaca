package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/quiz"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "play <flags|languages>",
		Short:     "Start a trainer directly",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(quiz.Flags), string(quiz.Languages)},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := quiz.ParseVariant(args[0])
			if err != nil {
				return err
			}
			return runApp(cmd, v)
		},
	}
}
