package utils

import (
	"testing"
	"time"
)

func TestNormalizeSpokenEmail(t *testing.T) {
	u := New()

	cases := []struct {
		in   string
		want string
	}{
		{"user at example dot com", "user@example.com"},
		{"User At Example Dot Com", "user@example.com"},
		{"john underscore doe at mail dot com", "john_doe@mail.com"},
		{"jane dash doe at mail dot com", "jane-doe@mail.com"},
		{"user@example.com", "user@example.com"},
	}

	for _, c := range cases {
		if got := u.NormalizeSpokenEmail(c.in); got != c.want {
			t.Errorf("NormalizeSpokenEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeSpokenEmailIdempotent(t *testing.T) {
	u := New()

	once := u.NormalizeSpokenEmail("user at example dot com")
	twice := u.NormalizeSpokenEmail(once)
	if once != twice {
		t.Errorf("normalizer not idempotent: %q -> %q", once, twice)
	}
}

func TestNormalizeSpokenPhone(t *testing.T) {
	u := New()

	cases := []struct {
		in   string
		want string
	}{
		{"nine eight seven six five four three two one zero", "9876543210"},
		{"plus nine one 98765 43210", "+919876543210"},
		{"987-654-3210", "9876543210"},
		{"oh one two", "012"},
	}

	for _, c := range cases {
		if got := u.NormalizeSpokenPhone(c.in); got != c.want {
			t.Errorf("NormalizeSpokenPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp: %v", err)
	}
	if len(id) != 26 {
		t.Errorf("unexpected ULID length %d for %q", len(id), id)
	}
}
