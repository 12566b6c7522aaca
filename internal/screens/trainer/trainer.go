// Package trainer is the quiz screen shared by the flag and language
// variants. All quiz rules live in the quiz package; this screen turns key
// presses into session calls and schedules the follow-up commands.
package trainer

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/screens/summary"
	"github.com/abhisek/geodrill/internal/ui/components"
	"github.com/abhisek/geodrill/internal/ui/layout"
)

var errNoCatalog = errors.New("no reference data loaded")

const (
	loadTimeout    = 5 * time.Second
	persistTimeout = 10 * time.Second
)

// Deps are the collaborators a trainer needs.
type Deps struct {
	Catalog  *refdata.Catalog
	Recorder *progress.Recorder
	Players  identity.Provider

	// NewRand returns the generator for one session. Nil seeds from the clock.
	NewRand func() *rand.Rand
}

// TrainerScreen implements screen.Screen for one quiz variant.
type TrainerScreen struct {
	id      string
	deps    Deps
	variant quiz.Variant
	sess    *quiz.Session
	choices components.MultiChoice
	saving  int
	closed  bool
	errMsg  string
	round   int // bumped whenever a new option set is shown

	started time.Time
	missed  []string
}

var _ screen.Screen = (*TrainerScreen)(nil)
var _ screen.KeyHintProvider = (*TrainerScreen)(nil)
var _ screen.Closer = (*TrainerScreen)(nil)
var _ screen.StreakProvider = (*TrainerScreen)(nil)

// New creates a trainer for variant. The session starts in Init.
func New(variant quiz.Variant, deps Deps) *TrainerScreen {
	return &TrainerScreen{
		id:      uuid.New().String(),
		deps:    deps,
		variant: variant,
	}
}

func (s *TrainerScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *TrainerScreen) Title() string {
	return s.variant.Title()
}

// Streak reports the live streak once the session is running.
func (s *TrainerScreen) Streak() (quiz.Streak, bool) {
	if s.sess == nil {
		return quiz.Streak{}, false
	}
	return s.sess.Streak(), true
}

// Session exposes the running session, nil until it is ready.
func (s *TrainerScreen) Session() *quiz.Session {
	return s.sess
}

// Close ends the session so late timers and answers cannot change it.
func (s *TrainerScreen) Close() {
	s.closed = true
	if s.sess != nil {
		s.sess.Close()
	}
}

func (s *TrainerScreen) KeyHints() []layout.KeyHint {
	if s.sess == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.sess.Pending() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-" + strconv.Itoa(len(s.sess.Options())), Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "←→", Description: "History"},
		{Key: "H", Description: "Hint"},
		{Key: "Q", Description: "Finish"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrainerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		return s.handleReady(msg)

	case advanceMsg:
		if s.sess == nil || msg.SessionID != s.sess.ID() {
			return s, nil
		}
		if s.sess.Advance(msg.Token) {
			s.syncChoices(true)
		}
		return s, nil

	case persistedMsg:
		if s.saving > 0 {
			s.saving--
		}
		return s, nil

	case components.ChoiceMsg:
		if msg.Seq != s.choices.Seq {
			return s, nil
		}
		return s.submit(msg.Index)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// startSession builds the session off the UI loop because restoring the
// streak reads from storage.
func (s *TrainerScreen) startSession() tea.Cmd {
	owner := s.id
	deps := s.deps
	variant := s.variant
	return func() tea.Msg {
		if deps.Catalog == nil {
			return sessionReadyMsg{Owner: owner, Err: errNoCatalog}
		}
		cfg := quiz.Config{
			Variant:  variant,
			Items:    deps.Catalog.Items(variant),
			Identity: identity.Key(deps.Players),
		}
		if deps.NewRand != nil {
			cfg.Rand = deps.NewRand()
		}
		sess, err := quiz.NewSession(context.Background(), cfg)
		if err != nil {
			return sessionReadyMsg{Owner: owner, Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		sess.Restore(deps.Recorder.LoadStreak(ctx, cfg.Identity, variant))

		return sessionReadyMsg{Owner: owner, Session: sess}
	}
}

func (s *TrainerScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Owner != s.id {
		if msg.Session != nil {
			msg.Session.Close()
		}
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if s.closed {
		msg.Session.Close()
		return s, nil
	}
	s.sess = msg.Session
	s.started = time.Now()
	s.syncChoices(true)
	return s, nil
}

func (s *TrainerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil {
		return s, nil
	}

	switch msg.String() {
	case "left":
		if s.sess.GoBack() {
			s.syncChoices(true)
		}
		return s, nil
	case "right":
		if s.sess.GoForward() {
			s.syncChoices(true)
		}
		return s, nil
	case "h", "H":
		s.sess.ToggleHint()
		return s, nil
	case "q", "Q":
		result := s.result()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(result)}
		}
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// submit answers with the option at index i and schedules the transition
// and the writes for it.
func (s *TrainerScreen) submit(i int) (screen.Screen, tea.Cmd) {
	if s.sess == nil {
		return s, nil
	}
	opts := s.sess.Options()
	if i < 0 || i >= len(opts) {
		return s, nil
	}
	asked := s.sess.Current()
	out, ok := s.sess.Submit(opts[i].Key())
	if !ok {
		return s, nil
	}
	if !out.Attempt.Correct && !slices.Contains(s.missed, asked.Label()) {
		s.missed = append(s.missed, asked.Label())
	}
	s.syncChoices(false)
	s.saving++

	sessionID := out.Attempt.SessionID
	token := out.Transition.Token
	return s, tea.Batch(
		tea.Tick(out.Transition.Delay, func(time.Time) tea.Msg {
			return advanceMsg{SessionID: sessionID, Token: token}
		}),
		persist(s.deps.Recorder, out),
	)
}

// result snapshots the run for the summary screen.
func (s *TrainerScreen) result() summary.Result {
	return summary.Result{
		Variant:  s.variant,
		Duration: time.Since(s.started),
		Tally:    s.sess.Tally(),
		Streak:   s.sess.Streak(),
		Missed:   slices.Clone(s.missed),
	}
}

// persist runs the writes for one answer. The result is only counted;
// the recorder has already logged any failure.
func persist(rec *progress.Recorder, out quiz.Outcome) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return persistedMsg{Err: rec.Record(ctx, out)}
	}
}

// syncChoices mirrors the session's options and marks into the selector.
// reset marks a new option set: the cursor goes back to the first option
// and picks made against the previous set are dropped.
func (s *TrainerScreen) syncChoices(reset bool) {
	opts := s.sess.Options()
	labels := make([]string, len(opts))
	states := make([]components.ChoiceState, len(opts))
	feedback := s.sess.Phase() == quiz.PhaseFeedback

	for i, it := range opts {
		labels[i] = it.Label()
		switch s.sess.Mark(it.Key()) {
		case quiz.MarkCorrect:
			states[i] = components.ChoiceRight
		case quiz.MarkWrong:
			states[i] = components.ChoiceWrong
		default:
			if feedback {
				states[i] = components.ChoiceFaded
			}
		}
	}

	cursor := s.choices.Cursor
	if reset || cursor >= len(opts) {
		cursor = 0
	}
	if reset {
		s.round++
	}
	s.choices = components.MultiChoice{
		Options: labels,
		States:  states,
		Cursor:  cursor,
		Locked:  s.sess.Phase() != quiz.PhasePresenting,
		Seq:     s.round,
	}
}
