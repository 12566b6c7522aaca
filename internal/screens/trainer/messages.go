package trainer

import "github.com/abhisek/geodrill/internal/quiz"

// sessionReadyMsg is sent when the quiz session has been created and its
// streak restored from storage.
type sessionReadyMsg struct {
	Owner   string // id of the screen that asked for it
	Session *quiz.Session
	Err     error
}

// advanceMsg fires once the feedback delay of an answer has elapsed.
type advanceMsg struct {
	SessionID string
	Token     uint64
}

// persistedMsg reports that the writes for one answer have finished.
type persistedMsg struct {
	Err error
}
