package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
)

func newStatsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "stats",
		Short: "Show stored streaks and progress for the current player",
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, _ := cmd.Flags().GetInt("recent")
			hardest, _ := cmd.Flags().GetInt("hardest")

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			// Labels are a nicety; fall back to keys if the data is broken.
			cat, err := e.catalog()
			if err != nil {
				e.log.Warn("stats without reference data", "error", err)
			}

			p, err := progress.LoadProfile(cmd.Context(), e.repo, identity.Key(e.players), recent)
			if err != nil {
				return err
			}
			printProfile(out(cmd), p, cat, hardest)
			return nil
		},
	}
	c.Flags().Int("recent", 10, "number of recent answers to list (0 lists all)")
	c.Flags().Int("hardest", 5, "number of most-missed items per variant")
	return c
}

func printProfile(w io.Writer, p progress.Profile, cat *refdata.Catalog, hardest int) {
	rule := strings.Repeat("─", 60)

	fmt.Fprintf(w, "Player: %s\n\n", p.Identity)
	if p.Empty() {
		fmt.Fprintln(w, "Nothing recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-18s  %6s  %7s  %9s  %8s\n", "Trainer", "Best", "Current", "Answered", "Accuracy")
	fmt.Fprintln(w, rule)
	for _, v := range quiz.Variants {
		sc := p.Scores[v]
		correct, answered := p.Totals(v)
		acc := "-"
		if answered > 0 {
			acc = fmt.Sprintf("%.0f%%", float64(correct)/float64(answered)*100)
		}
		fmt.Fprintf(w, "%-18s  %6d  %7d  %9d  %8s\n", v.Title(), sc.BestStreak, sc.Score, answered, acc)
	}

	for _, v := range quiz.Variants {
		hard := p.Hardest(v, hardest)
		if len(hard) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nMost missed: %s\n", v.Title())
		fmt.Fprintln(w, rule)
		for _, it := range hard {
			fmt.Fprintf(w, "%-30s  %3d right  %3d wrong  %4.0f%%\n",
				label(cat, v, it.ItemKey), it.CorrectCount, it.WrongCount, it.Accuracy()*100)
		}
	}

	if len(p.Recent) > 0 {
		fmt.Fprintln(w, "\nRecent answers")
		fmt.Fprintln(w, rule)
		for _, a := range p.Recent {
			ok := "✓"
			if !a.Correct {
				ok = "✗"
			}
			line := fmt.Sprintf("%s  %-19s  %-10s  %s",
				ok, a.CreatedAt.Local().Format("2006-01-02 15:04:05"), a.Variant, label(cat, a.Variant, a.ItemKey))
			if !a.Correct && a.UserAnswer != "" {
				line += fmt.Sprintf(" (answered %s)", a.UserAnswer)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func label(cat *refdata.Catalog, v quiz.Variant, key string) string {
	if cat != nil {
		if it, ok := cat.Lookup(v, key); ok {
			return it.Label()
		}
	}
	return key
}
