package assistantService

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"regexp"
	"testing"
)

func TestDispatchTime(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "Jarvis what is the time right now")

	pattern := regexp.MustCompile(`^The current time is \d{2}:\d{2}:\d{2}$`)
	if !pattern.MatchString(result.Response) {
		t.Fatalf("unexpected time response %q", result.Response)
	}
	if !result.Continue {
		t.Fatal("time turn should not end the loop")
	}
	if len(f.voice.spoken) != 1 || f.voice.spoken[0] != result.Response {
		t.Fatalf("expected the response to be spoken, got %v", f.voice.spoken)
	}
}

func TestDispatchShutdownEndsLoop(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis shutdown the system")

	if result.Continue {
		t.Fatal("shutdown turn should end the loop")
	}
	if f.system.shutdowns != 1 {
		t.Fatalf("expected one shutdown call, got %d", f.system.shutdowns)
	}
}

func TestDispatchRestartKeepsLoop(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis restart the system")

	if !result.Continue {
		t.Fatal("restart turn should not end the loop")
	}
	if f.system.restarts != 1 {
		t.Fatalf("expected one restart call, got %d", f.system.restarts)
	}
}

func TestDispatchOpenKnownSite(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis open github")

	if result.Response != "Opening github" {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if len(f.system.opened) != 1 || f.system.opened[0] != "https://github.com" {
		t.Fatalf("expected github URL to be opened, got %v", f.system.opened)
	}
	if len(f.system.searched) != 0 {
		t.Fatalf("known site must not fall through to desktop search, got %v", f.system.searched)
	}
}

func TestDispatchSearchFallback(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis search golang tutorials")

	if result.Response != "Searching for golang tutorials" {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if len(f.system.searched) != 1 || f.system.searched[0] != "golang tutorials" {
		t.Fatalf("unexpected search queries %v", f.system.searched)
	}
}

func TestDispatchOpenBeatsPlay(t *testing.T) {
	f := newServiceFixture()

	f.svc.Dispatch(context.Background(), "jarvis open the playlist")

	if len(f.system.played) != 0 {
		t.Fatalf("open clause must not reach the play handler, got %v", f.system.played)
	}
	if len(f.system.searched) != 1 {
		t.Fatalf("expected a desktop search, got %v", f.system.searched)
	}
}

func TestDispatchPlay(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis play faded")

	if result.Response != "Playing faded" {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if len(f.system.played) != 1 || f.system.played[0] != "faded" {
		t.Fatalf("unexpected playback queries %v", f.system.played)
	}
}

func TestDispatchPersistsEveryTurnOnce(t *testing.T) {
	f := newServiceFixture()

	f.svc.Dispatch(context.Background(), "jarvis play faded")

	if len(f.store.created) != 1 {
		t.Fatalf("expected exactly one persisted interaction, got %d", len(f.store.created))
	}
	got := f.store.created[0]
	if got.Command != "jarvis play faded" || got.Response != "Playing faded" {
		t.Fatalf("unexpected persisted interaction %+v", got)
	}
}

func TestDispatchPersistFailureIsSwallowed(t *testing.T) {
	f := newServiceFixture()
	f.store.createErr = errors.New("connection refused")

	result := f.svc.Dispatch(context.Background(), "jarvis play faded")

	if result.Response != "Playing faded" {
		t.Fatalf("persistence failure changed the response to %q", result.Response)
	}
	if !result.Continue {
		t.Fatal("persistence failure must not end the loop")
	}
}

func TestDispatchAIFallbackReplies(t *testing.T) {
	f := newServiceFixture()

	result := f.svc.Dispatch(context.Background(), "jarvis tell me a fun fact")

	if result.Response != "ai says hello" {
		t.Fatalf("unexpected AI response %q", result.Response)
	}
	if len(f.ai.asked) != 1 {
		t.Fatalf("expected one AI request, got %d", len(f.ai.asked))
	}
}

func TestDispatchAIErrorYieldsFallbackReply(t *testing.T) {
	f := newServiceFixture()
	f.ai.err = errors.New("quota exceeded")

	result := f.svc.Dispatch(context.Background(), "jarvis tell me a fun fact")

	if result.Response != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", result.Response)
	}
	if !result.Continue {
		t.Fatal("AI failure must not end the loop")
	}
}

func TestDispatchAIServedFromCache(t *testing.T) {
	f := newServiceFixture()

	clause := "jarvis tell me a fun fact"
	key := fmt.Sprintf("jarvis:reply:%x", sha256.Sum256([]byte(clause)))
	f.cache.entries = map[string]string{key: "cached reply"}

	result := f.svc.Dispatch(context.Background(), clause)

	if result.Response != "cached reply" {
		t.Fatalf("expected cached reply, got %q", result.Response)
	}
	if len(f.ai.asked) != 0 {
		t.Fatalf("cache hit must skip the AI backend, got %v", f.ai.asked)
	}
}
