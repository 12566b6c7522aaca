package quiz

import "math/rand/v2"

// Streak tracks consecutive correct answers and the best run seen.
type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Hit records a correct answer.
func (s *Streak) Hit() {
	s.Current++
	if s.Current > s.Best {
		s.Best = s.Current
	}
}

// Miss records a wrong answer. Best is left alone.
func (s *Streak) Miss() {
	s.Current = 0
}

type milestone struct {
	at      int
	message string
}

// milestones is ordered highest first; the first one reached wins.
var milestones = []milestone{
	{25, "Legendary! 25 in a row!"},
	{20, "Unstoppable! 20 in a row!"},
	{15, "On fire! 15 in a row!"},
	{10, "Amazing! 10 in a row!"},
	{5, "Great streak! 5 in a row!"},
}

var encouragements = []string{
	"Correct!",
	"Nice one!",
	"Well done!",
	"Spot on!",
}

// Encouragement picks the message shown after a correct answer.
func Encouragement(rng *rand.Rand, streak int) string {
	for _, m := range milestones {
		if streak >= m.at {
			return m.message
		}
	}
	return encouragements[rng.IntN(len(encouragements))]
}

// NextMilestone returns the next streak length that unlocks a new message,
// or 0 once the top milestone is reached.
func NextMilestone(current int) int {
	next := 0
	for _, m := range milestones {
		if m.at > current {
			next = m.at
		}
	}
	return next
}
