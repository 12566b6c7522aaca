package identity

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  Ada ", "ada", false},
		{"GUEST", "", false},
		{"bob_99", "bob_99", false},
		{"with space", "", true},
		{"a/b", "", true},
		{"averyveryveryverylongnamethatgoesonandon", "", true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Normalize(%q) err = %v, want ErrInvalidName", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	guest, _ := NewStatic("")
	if got := Key(guest); got != GuestKey {
		t.Errorf("Key(guest) = %q, want %q", got, GuestKey)
	}
	if got := Key(nil); got != GuestKey {
		t.Errorf("Key(nil) = %q, want %q", got, GuestKey)
	}

	ada, _ := NewStatic("Ada")
	if got := Key(ada); got != "ada" {
		t.Errorf("Key(ada) = %q, want ada", got)
	}
}

func TestSignInOut(t *testing.T) {
	p, _ := NewStatic("")
	if err := p.SignIn("Grace"); err != nil {
		t.Fatal(err)
	}
	if Display(p) != "grace" {
		t.Errorf("Display = %q, want grace", Display(p))
	}
	if err := p.SignIn("bad name"); err == nil {
		t.Error("expected error for invalid name")
	}
	if Display(p) != "grace" {
		t.Error("failed sign-in should keep the previous player")
	}
	p.SignOut()
	if Display(p) != "Guest" {
		t.Errorf("Display = %q, want Guest", Display(p))
	}
}
