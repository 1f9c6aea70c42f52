package config

import (
	"context"
	"io"
	"reflect"
	"testing"

	"JarvisGolang/internal/api/assistant"
	"JarvisGolang/internal/voice"

	"github.com/sirupsen/logrus"
)

type fakeLoopVoice struct {
	wakeCalls int
	script    []string
	spoken    []string
}

func (f *fakeLoopVoice) WaitForWakeWord(_ context.Context, _ string) error {
	f.wakeCalls++
	if f.wakeCalls > 1 {
		return context.Canceled
	}
	return nil
}

func (f *fakeLoopVoice) Listen(_ context.Context) string {
	if len(f.script) == 0 {
		return voice.Sentinel
	}
	next := f.script[0]
	f.script = f.script[1:]
	return next
}

func (f *fakeLoopVoice) Speak(_ context.Context, text string) {
	f.spoken = append(f.spoken, text)
}

func (f *fakeLoopVoice) Close() {}

type fakeDispatcher struct {
	clauses  []string
	terminal map[string]bool
}

func (f *fakeDispatcher) Dispatch(_ context.Context, clause string) assistant.DispatchResult {
	f.clauses = append(f.clauses, clause)
	return assistant.DispatchResult{Response: "ok", Continue: !f.terminal[clause]}
}

func newLoopFixture(script ...string) (*Assistant, *fakeLoopVoice, *fakeDispatcher) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	v := &fakeLoopVoice{script: script}
	d := &fakeDispatcher{terminal: map[string]bool{}}

	a := &Assistant{
		cfg:        Config{WakeWord: "jarvis"},
		log:        log,
		voice:      v,
		dispatcher: d,
	}

	return a, v, d
}

func TestRunLoopStopPhraseTerminates(t *testing.T) {
	a, v, d := newLoopFixture("jarvis stop")

	err := a.runLoop(context.Background())
	if err != nil {
		t.Fatalf("stop clause must end the loop cleanly, got %v", err)
	}

	want := []string{"sir..", "Goodbye sir."}
	if !reflect.DeepEqual(v.spoken, want) {
		t.Fatalf("unexpected utterances %v", v.spoken)
	}
	if len(d.clauses) != 0 {
		t.Fatalf("stop clause must not be dispatched, got %v", d.clauses)
	}
	if v.wakeCalls != 1 {
		t.Fatalf("loop must not re-arm wake-word listening after the farewell, wake calls %d", v.wakeCalls)
	}
}

func TestRunLoopDispatchesClausesInOrder(t *testing.T) {
	a, _, d := newLoopFixture(
		"jarvis play faded and jarvis search github",
		"jarvis stop",
	)

	a.runLoop(context.Background())

	want := []string{"jarvis play faded", "jarvis search github"}
	if !reflect.DeepEqual(d.clauses, want) {
		t.Fatalf("unexpected dispatch order %v", d.clauses)
	}
}

func TestRunLoopIgnoresUtterancesWithoutWakeWord(t *testing.T) {
	a, _, d := newLoopFixture(
		"play faded",
		"jarvis stop",
	)

	a.runLoop(context.Background())

	if len(d.clauses) != 0 {
		t.Fatalf("utterance without wake word must be ignored, got %v", d.clauses)
	}
}

func TestRunLoopTerminalTurnEndsSession(t *testing.T) {
	a, v, d := newLoopFixture("jarvis shutdown")
	d.terminal["jarvis shutdown"] = true

	err := a.runLoop(context.Background())
	if err != nil {
		t.Fatalf("terminal turn must end the loop cleanly, got %v", err)
	}

	if len(d.clauses) != 1 {
		t.Fatalf("expected one dispatched clause, got %v", d.clauses)
	}
	if v.wakeCalls != 1 {
		t.Fatalf("loop must not re-arm wake-word listening after a terminal turn, wake calls %d", v.wakeCalls)
	}
}

func TestRunLoopStopSiblingClauseStillRuns(t *testing.T) {
	a, v, d := newLoopFixture("jarvis stop and jarvis play faded")

	a.runLoop(context.Background())

	if !reflect.DeepEqual(d.clauses, []string{"jarvis play faded"}) {
		t.Fatalf("sibling clause must still run, got %v", d.clauses)
	}

	found := false
	for _, s := range v.spoken {
		if s == "Goodbye sir." {
			found = true
		}
	}
	if !found {
		t.Fatalf("farewell was not spoken, got %v", v.spoken)
	}
}

func TestSplitClauses(t *testing.T) {
	got := splitClauses("play the band and jarvis stop")
	want := []string{"play the band", "jarvis stop"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected clauses %v", got)
	}

	if got := splitClauses("jarvis play faded"); len(got) != 1 {
		t.Fatalf("single clause split incorrectly: %v", got)
	}
}

func TestLoadSitesFallsBackToDefaults(t *testing.T) {
	sites := loadSites("does-not-exist.json")

	if sites["youtube"] != "https://www.youtube.com" {
		t.Fatalf("default site directory missing youtube, got %v", sites)
	}
	if len(sites) != 4 {
		t.Fatalf("unexpected default directory %v", sites)
	}
}
