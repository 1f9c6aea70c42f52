package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NormalizeSpokenEmail(text string) string
	NormalizeSpokenPhone(text string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Ordered so that token substitutions run before the final space strip.
var spokenEmailTokens = []struct {
	spoken string
	symbol string
}{
	{" at ", "@"},
	{" dot ", "."},
	{" underscore ", "_"},
	{" dash ", "-"},
}

// NormalizeSpokenEmail turns a dictated address into an email-shaped string,
// e.g. "user at example dot com" -> "user@example.com". Idempotent on an
// already-normalized string.
func (u *utils) NormalizeSpokenEmail(text string) string {
	text = strings.ToLower(text)

	for _, t := range spokenEmailTokens {
		text = strings.ReplaceAll(text, t.spoken, t.symbol)
	}

	return strings.ReplaceAll(text, " ", "")
}

var spokenPhoneTokens = map[string]string{
	"zero":  "0",
	"oh":    "0",
	"one":   "1",
	"two":   "2",
	"three": "3",
	"four":  "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
	"plus":  "+",
}

// NormalizeSpokenPhone turns a dictated number into digits, keeping a leading
// plus and dropping everything the recognizer sprinkled in between.
func (u *utils) NormalizeSpokenPhone(text string) string {
	var b strings.Builder

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if d, ok := spokenPhoneTokens[tok]; ok {
			b.WriteString(d)
			continue
		}
		for _, r := range tok {
			if (r >= '0' && r <= '9') || r == '+' {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}
