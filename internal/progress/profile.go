package progress

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/geodrill/internal/quiz"
)

// Profile is everything stored for one identity, as shown by the profile
// screen and the stats command.
type Profile struct {
	Identity string
	Scores   map[quiz.Variant]Score
	Items    map[quiz.Variant][]ItemProgress
	Recent   []AttemptRecord
}

// LoadProfile reads the scores, per-item counters and the newest recent
// attempts for identity.
func LoadProfile(ctx context.Context, r Reader, identity string, recent int) (Profile, error) {
	p := Profile{
		Identity: identity,
		Scores:   make(map[quiz.Variant]Score),
		Items:    make(map[quiz.Variant][]ItemProgress),
	}

	scores, err := r.Scores(ctx, identity)
	if err != nil {
		return p, fmt.Errorf("load scores: %w", err)
	}
	for _, s := range scores {
		p.Scores[s.Variant] = s
	}

	for _, v := range quiz.Variants {
		items, err := r.ItemProgress(ctx, identity, v)
		if err != nil {
			return p, fmt.Errorf("load %s progress: %w", v, err)
		}
		p.Items[v] = items
	}

	p.Recent, err = r.RecentAttempts(ctx, identity, recent)
	if err != nil {
		return p, fmt.Errorf("load recent attempts: %w", err)
	}
	return p, nil
}

// Totals sums the answers recorded for variant.
func (p Profile) Totals(v quiz.Variant) (correct, answered int) {
	for _, it := range p.Items[v] {
		correct += it.CorrectCount
		answered += it.Attempts()
	}
	return correct, answered
}

// Empty reports whether nothing has been recorded yet.
func (p Profile) Empty() bool {
	if len(p.Scores) > 0 || len(p.Recent) > 0 {
		return false
	}
	for _, items := range p.Items {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Hardest returns up to n items of variant that have been missed at least
// once, lowest accuracy first.
func (p Profile) Hardest(v quiz.Variant, n int) []ItemProgress {
	return Hardest(p.Items[v], n)
}

// Hardest orders items by accuracy ascending, then by misses descending,
// and keeps the first n that have at least one miss.
func Hardest(items []ItemProgress, n int) []ItemProgress {
	missed := make([]ItemProgress, 0, len(items))
	for _, it := range items {
		if it.WrongCount > 0 {
			missed = append(missed, it)
		}
	}
	slices.SortFunc(missed, func(a, b ItemProgress) int {
		if c := cmp.Compare(a.Accuracy(), b.Accuracy()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.WrongCount, a.WrongCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemKey, b.ItemKey)
	})
	if n > 0 && len(missed) > n {
		missed = missed[:n]
	}
	return missed
}
