package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyPool is returned when a session is created without items.
var ErrEmptyPool = errors.New("quiz: item pool is empty")

// Phase represents where the session is in its question/feedback cycle.
type Phase int

const (
	PhaseIdle       Phase = iota // Not yet initialised
	PhasePresenting              // Waiting for an answer
	PhaseFeedback                // Showing the verdict until the pending transition runs
	PhaseClosed                  // Owner has gone away; nothing mutates any more
)

func (p Phase) String() string {
	switch p {
	case PhasePresenting:
		return "presenting"
	case PhaseFeedback:
		return "feedback"
	case PhaseClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Mark is the visual state of a single option.
type Mark int

const (
	MarkNeutral Mark = iota
	MarkCorrect
	MarkWrong
)

// Feedback describes the verdict for the last submitted answer.
type Feedback struct {
	Correct     bool
	Chosen      string // key of the option the player picked
	ShowCorrect bool   // highlight the right answer after a miss
	Message     string
}

// Attempt is one answer submission, ready to be persisted.
type Attempt struct {
	SessionID     string
	Identity      string
	Variant       Variant
	ItemKey       string
	Correct       bool
	CorrectAnswer string // flags only
	UserAnswer    string // flags only
	At            time.Time
}

// Transition is the follow-up the owner must schedule after an answer:
// call Advance(Token) once Delay has elapsed.
type Transition struct {
	Token uint64
	Delay time.Duration
}

// Outcome is everything produced by a single Submit.
type Outcome struct {
	Attempt    Attempt
	Streak     Streak
	Transition Transition
}

// Tally counts answers given during this session only.
type Tally struct {
	Answered int
	Correct  int
}

// Config holds the inputs for NewSession.
type Config struct {
	Variant  Variant
	Items    []Item
	Identity string

	// Rand drives item and option selection. Nil seeds from the clock.
	Rand *rand.Rand

	// Now is the clock used for attempt timestamps. Nil means time.Now.
	Now func() time.Time
}

// Session is the per-trainer quiz state machine. It is owned by a single
// screen and is not safe for concurrent use.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc

	id       string
	variant  Variant
	identity string
	pool     []Item
	rng      *rand.Rand
	now      func() time.Time

	history  History
	options  OptionSet
	streak   Streak
	tally    Tally
	phase    Phase
	hint     bool
	feedback Feedback

	pending   uint64
	lastToken uint64
}

// NewSession creates a session and presents its first item. The session is
// closed when ctx is cancelled or Close is called.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if len(cfg.Items) == 0 {
		return nil, ErrEmptyPool
	}
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	pool := make([]Item, len(cfg.Items))
	copy(pool, cfg.Items)

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ctx:      sctx,
		cancel:   cancel,
		id:       uuid.New().String(),
		variant:  cfg.Variant,
		identity: cfg.Identity,
		pool:     pool,
		rng:      rng,
		now:      now,
	}
	s.initialize()
	return s, nil
}

// initialize presents a uniformly random first item.
func (s *Session) initialize() {
	first := s.pool[s.rng.IntN(len(s.pool))]
	s.history = History{}
	s.history.Push(first)
	s.present(first)
}

// present shows it with a fresh option set and clears transient flags.
func (s *Session) present(it Item) {
	s.options = BuildOptions(s.rng, s.pool, it, s.variant.Width())
	s.hint = false
	s.feedback = Feedback{}
	s.phase = PhasePresenting
}

func (s *Session) closed() bool {
	return s.ctx.Err() != nil
}

// GenerateNext presents a new item different from the current one and
// appends it to history, dropping any entries after the cursor.
// It is refused while an answer transition is pending.
func (s *Session) GenerateNext() bool {
	if s.closed() || s.pending != 0 {
		return false
	}
	s.generateNext()
	return true
}

func (s *Session) generateNext() {
	var prev string
	if cur := s.history.Current(); cur != nil {
		prev = cur.Key()
	}
	next := pickOther(s.rng, s.pool, prev)
	s.history.Push(next)
	s.present(next)
}

// Submit answers the current item with the option whose key is choice.
// It returns false when the answer is ignored: a transition is already
// pending, the session is closed, or choice is not one of the options.
func (s *Session) Submit(choice string) (Outcome, bool) {
	if s.closed() || s.pending != 0 || s.phase != PhasePresenting {
		return Outcome{}, false
	}
	idx := s.options.Index(choice)
	if idx < 0 {
		return Outcome{}, false
	}

	current := s.history.Current()
	correct := choice == current.Key()

	s.tally.Answered++
	if correct {
		s.tally.Correct++
		s.streak.Hit()
		s.feedback = Feedback{
			Correct: true,
			Chosen:  choice,
			Message: Encouragement(s.rng, s.streak.Current),
		}
	} else {
		s.streak.Miss()
		s.feedback = Feedback{
			Chosen:      choice,
			ShowCorrect: true,
			Message:     "The answer was " + current.Label(),
		}
	}
	s.phase = PhaseFeedback

	s.lastToken++
	s.pending = s.lastToken

	attempt := Attempt{
		SessionID: s.id,
		Identity:  s.identity,
		Variant:   s.variant,
		ItemKey:   current.Key(),
		Correct:   correct,
		At:        s.now(),
	}
	if s.variant.RecordsAnswerText() {
		attempt.CorrectAnswer = current.Label()
		attempt.UserAnswer = s.options[idx].Label()
	}

	return Outcome{
		Attempt: attempt,
		Streak:  s.streak,
		Transition: Transition{
			Token: s.pending,
			Delay: s.variant.Delay(correct),
		},
	}, true
}

// Advance runs the transition scheduled by Submit. Tokens that are stale,
// already consumed or belong to a closed session are ignored.
func (s *Session) Advance(token uint64) bool {
	if s.closed() || token == 0 || token != s.pending {
		return false
	}
	s.pending = 0
	s.generateNext()
	return true
}

// GoBack re-presents the previous history entry with fresh distractors.
func (s *Session) GoBack() bool {
	if s.closed() || s.pending != 0 {
		return false
	}
	it, ok := s.history.Back()
	if !ok {
		return false
	}
	s.present(it)
	return true
}

// GoForward re-presents the next history entry, or skips to a new item when
// the cursor is already at the tail.
func (s *Session) GoForward() bool {
	if s.closed() || s.pending != 0 {
		return false
	}
	it, ok := s.history.Forward()
	if !ok {
		s.generateNext()
		return true
	}
	s.present(it)
	return true
}

// ToggleHint flips hint visibility.
func (s *Session) ToggleHint() {
	if s.closed() {
		return
	}
	s.hint = !s.hint
}

// Restore seeds the streak, typically from persisted scores.
func (s *Session) Restore(st Streak) {
	if st.Current < 0 {
		st.Current = 0
	}
	if st.Best < st.Current {
		st.Best = st.Current
	}
	s.streak = st
}

// Close ends the session. Pending transitions become no-ops.
func (s *Session) Close() {
	s.cancel()
	s.pending = 0
	s.phase = PhaseClosed
}

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

func (s *Session) ID() string           { return s.id }
func (s *Session) Variant() Variant     { return s.variant }
func (s *Session) Identity() string     { return s.identity }
func (s *Session) Current() Item        { return s.history.Current() }
func (s *Session) Options() OptionSet   { return slices.Clone(s.options) }
func (s *Session) Streak() Streak       { return s.streak }
func (s *Session) Tally() Tally         { return s.tally }
func (s *Session) Feedback() Feedback   { return s.feedback }
func (s *Session) HintVisible() bool    { return s.hint }
func (s *Session) Pending() bool        { return s.pending != 0 }
func (s *Session) History() HistoryView { return s.history.View() }
func (s *Session) Reviewing() bool      { return !s.history.AtTail() }
func (s *Session) Phase() Phase {
	if s.closed() {
		return PhaseClosed
	}
	return s.phase
}

// Mark reports how the option with the given key should be highlighted.
func (s *Session) Mark(key string) Mark {
	if s.phase != PhaseFeedback {
		return MarkNeutral
	}
	cur := s.history.Current()
	switch {
	case cur != nil && key == cur.Key() && (s.feedback.Correct || s.feedback.ShowCorrect):
		return MarkCorrect
	case key == s.feedback.Chosen && !s.feedback.Correct:
		return MarkWrong
	}
	return MarkNeutral
}
