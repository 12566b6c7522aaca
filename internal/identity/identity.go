// Package identity resolves the key under which a player's progress is stored.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// GuestKey is the shared key used by everyone who has not signed in.
const GuestKey = "guest"

// ErrInvalidName is returned for names that cannot be used as a key.
var ErrInvalidName = errors.New("invalid player name")

var namePattern = regexp.MustCompile(`^[a-z0-9._-]{1,32}$`)

// Provider supplies the current player, if any.
type Provider interface {
	// Current returns the signed-in player id and true, or false for guests.
	Current() (string, bool)
}

// Key resolves p to a storage key, falling back to GuestKey.
func Key(p Provider) string {
	if p == nil {
		return GuestKey
	}
	if id, ok := p.Current(); ok {
		return id
	}
	return GuestKey
}

// Normalize trims and lower-cases name and checks it is usable as a key.
// An empty name is valid and means guest.
func Normalize(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", nil
	}
	if n == GuestKey {
		return "", nil
	}
	if !namePattern.MatchString(n) {
		return "", fmt.Errorf("%w %q: use 1-32 letters, digits, '.', '_' or '-'", ErrInvalidName, name)
	}
	return n, nil
}

// Static is a Provider with a fixed, mutable player name.
type Static struct {
	name string
}

var _ Provider = (*Static)(nil)

// NewStatic creates a provider for name; empty means guest.
func NewStatic(name string) (*Static, error) {
	n, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	return &Static{name: n}, nil
}

func (s *Static) Current() (string, bool) {
	if s == nil || s.name == "" {
		return "", false
	}
	return s.name, true
}

// SignIn switches to name. An empty name signs out.
func (s *Static) SignIn(name string) error {
	n, err := Normalize(name)
	if err != nil {
		return err
	}
	s.name = n
	return nil
}

// SignOut returns to guest mode.
func (s *Static) SignOut() {
	s.name = ""
}

// Display is the name shown in the UI.
func Display(p Provider) string {
	if id, ok := p.Current(); ok {
		return id
	}
	return "Guest"
}
