package assistantService

import (
	"context"
	"errors"
	"testing"

	"JarvisGolang/internal/api/assistant"
)

func TestMessageDialogue(t *testing.T) {
	f := newServiceFixture()
	f.voice.script = []string{
		"nine eight seven six five four three two one zero",
		"i will be late",
	}

	result := f.svc.Dispatch(context.Background(), "jarvis send a message")

	if len(f.messenger.numbers) != 1 {
		t.Fatalf("expected one message, got %d", len(f.messenger.numbers))
	}
	if f.messenger.numbers[0] != "919876543210" {
		t.Fatalf("unexpected number %q", f.messenger.numbers[0])
	}
	if f.messenger.messages[0] != "i will be late" {
		t.Fatalf("unexpected message %q", f.messenger.messages[0])
	}
	want := "Sending message to nine eight seven six five four three two one zero: i will be late"
	if result.Response != want {
		t.Fatalf("unexpected response %q", result.Response)
	}
}

func TestMessageDialogueKeepsExplicitPrefix(t *testing.T) {
	f := newServiceFixture()
	f.voice.script = []string{
		"plus four four seven seven zero zero nine zero zero one two three",
		"hello",
	}

	f.svc.Dispatch(context.Background(), "jarvis send a message")

	if f.messenger.numbers[0] != "447700900123" {
		t.Fatalf("unexpected number %q", f.messenger.numbers[0])
	}
}

func TestMessageDialogueSendFailure(t *testing.T) {
	f := newServiceFixture()
	f.messenger.err = errors.New("not connected")
	f.voice.script = []string{
		"nine eight seven six five four three two one zero",
		"hello",
	}

	result := f.svc.Dispatch(context.Background(), "jarvis send a message")

	if result.Response != apologyMessage {
		t.Fatalf("expected apology, got %q", result.Response)
	}
	if !result.Continue {
		t.Fatal("message failure must not end the loop")
	}
}

func TestMessageDialogueSendFailureIsTyped(t *testing.T) {
	f := newServiceFixture()
	f.messenger.err = errors.New("not connected")
	f.voice.script = []string{
		"nine eight seven six five four three two one zero",
		"hello",
	}

	svc := f.svc.(*assistantService)

	_, err := svc.runMessageDialogue(context.Background())
	if !errors.Is(err, assistant.ErrMessageNotSent) {
		t.Fatalf("expected ErrMessageNotSent, got %v", err)
	}
}
