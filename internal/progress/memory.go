package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/geodrill/internal/quiz"
)

type scoreKey struct {
	identity string
	variant  quiz.Variant
}

type itemKey struct {
	identity string
	variant  quiz.Variant
	item     string
}

// MemoryRepo is an in-process Repo. Nothing survives the process; it backs
// the "memory" backend and tests.
type MemoryRepo struct {
	mu       sync.Mutex
	now      func() time.Time
	scores   map[scoreKey]Score
	items    map[itemKey]ItemProgress
	attempts []AttemptRecord
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now:    time.Now,
		scores: make(map[scoreKey]Score),
		items:  make(map[itemKey]ItemProgress),
	}
}

func (m *MemoryRepo) Score(_ context.Context, identity string, variant quiz.Variant) (*Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.scores[scoreKey{identity, variant}]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (m *MemoryRepo) UpsertScore(_ context.Context, identity string, variant quiz.Variant, score, bestStreak int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := scoreKey{identity, variant}
	m.scores[k] = Score{
		Identity:   identity,
		Variant:    variant,
		Score:      score,
		BestStreak: max(bestStreak, m.scores[k].BestStreak),
		UpdatedAt:  m.now(),
	}
	return nil
}

func (m *MemoryRepo) UpsertProgress(_ context.Context, identity string, variant quiz.Variant, item string, correct bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := itemKey{identity, variant, item}
	p := m.items[k]
	p.Variant = variant
	p.ItemKey = item
	if correct {
		p.CorrectCount++
	} else {
		p.WrongCount++
	}
	p.LastAttemptAt = m.now()
	m.items[k] = p
	return nil
}

func (m *MemoryRepo) RecordAttempt(_ context.Context, rec AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	m.attempts = append(m.attempts, rec)
	return nil
}

func (m *MemoryRepo) Scores(_ context.Context, identity string) ([]Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Score
	for k, sc := range m.scores {
		if k.identity == identity {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })
	return out, nil
}

func (m *MemoryRepo) ItemProgress(_ context.Context, identity string, variant quiz.Variant) ([]ItemProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ItemProgress
	for k, p := range m.items {
		if k.identity == identity && k.variant == variant {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemKey < out[j].ItemKey })
	return out, nil
}

func (m *MemoryRepo) RecentAttempts(_ context.Context, identity string, limit int) ([]AttemptRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []AttemptRecord
	for i := len(m.attempts) - 1; i >= 0; i-- {
		if m.attempts[i].Identity != identity {
			continue
		}
		out = append(out, m.attempts[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepo) Reset(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.scores {
		if k.identity == identity {
			delete(m.scores, k)
		}
	}
	for k := range m.items {
		if k.identity == identity {
			delete(m.items, k)
		}
	}
	kept := m.attempts[:0]
	for _, a := range m.attempts {
		if a.Identity != identity {
			kept = append(kept, a)
		}
	}
	m.attempts = kept
	return nil
}
