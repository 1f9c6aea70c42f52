package assistantService

import (
	"strings"
	"time"

	"JarvisGolang/internal/api/assistant"
	contextPkg "JarvisGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// rule is one entry of the ordered dispatch table. Rules are evaluated
// top to bottom and the first match wins; the ordering is load-bearing
// because the predicates are not mutually exclusive.
type rule struct {
	name   string
	match  func(clause string) bool
	handle func(ctx context.Context, clause string) assistant.DispatchResult
}

func (s *assistantService) buildRules() []rule {
	has := func(sub string) func(string) bool {
		return func(clause string) bool { return strings.Contains(clause, sub) }
	}

	return []rule{
		{
			name: "time",
			match: func(clause string) bool {
				return strings.Contains(clause, "time") && strings.Contains(clause, "right now")
			},
			handle: s.handleTime,
		},
		{
			name:   "shutdown",
			match:  has("shutdown"),
			handle: s.handleShutdown,
		},
		{
			name:   "restart",
			match:  has("restart"),
			handle: s.handleRestart,
		},
		{
			name:   "email",
			match:  has("email"),
			handle: s.handleEmail,
		},
		{
			name:   "message",
			match:  has("message"),
			handle: s.handleMessage,
		},
		{
			name: "open_or_search",
			match: func(clause string) bool {
				return strings.Contains(clause, "open") || strings.Contains(clause, "search")
			},
			handle: s.handleOpenOrSearch,
		},
		{
			name:   "play",
			match:  has("play"),
			handle: s.handlePlay,
		},
		{
			name:   "chat_log",
			match:  has("chat log"),
			handle: s.handleChatLog,
		},
		{
			name:   "ai_fallback",
			match:  func(string) bool { return true },
			handle: s.handleAI,
		},
	}
}

// Dispatch runs exactly one turn for one clause: match a rule, produce a
// response, then attempt exactly one persistence write. A failed write is
// logged and discarded; it never changes what was already spoken.
func (s *assistantService) Dispatch(ctx context.Context, clause string) assistant.DispatchResult {
	clause = strings.TrimSpace(strings.ToLower(clause))

	turnID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err == nil {
		ctx = contextPkg.WithTurnID(ctx, turnID)
	}

	var result assistant.DispatchResult
	for _, r := range s.rules {
		if r.match(clause) {
			s.log.WithFields(logrus.Fields{
				"turn_id": turnID,
				"rule":    r.name,
				"clause":  clause,
			}).Debug("Dispatching clause")

			result = r.handle(ctx, clause)
			break
		}
	}

	s.persistTurn(ctx, clause, result.Response)

	return result
}

func (s *assistantService) persistTurn(ctx context.Context, command, response string) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Failed to create repository client for interaction log")
		return
	}

	if err := repo.Interactions.CreateInteraction(ctx, command, response); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Failed to persist interaction")
	}
}

func (s *assistantService) handleTime(ctx context.Context, _ string) assistant.DispatchResult {
	b := "The current time is " + time.Now().Format("15:04:05")
	s.voice.Speak(ctx, b)

	return assistant.DispatchResult{Response: b, Continue: true}
}

// The host is going down after this branch, so the loop ends too.
func (s *assistantService) handleShutdown(ctx context.Context, _ string) assistant.DispatchResult {
	b := "Shutting down the system"
	s.voice.Speak(ctx, b)

	if err := s.system.Shutdown(); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Shutdown action failed")
	}

	return assistant.DispatchResult{Response: b, Continue: false}
}

func (s *assistantService) handleRestart(ctx context.Context, _ string) assistant.DispatchResult {
	b := "Restarting the system"
	s.voice.Speak(ctx, b)

	if err := s.system.Restart(); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Restart action failed")
	}

	return assistant.DispatchResult{Response: b, Continue: true}
}

func (s *assistantService) handleOpenOrSearch(ctx context.Context, clause string) assistant.DispatchResult {
	rest := stripTokens(clause, s.cfg.WakeWord, "open")

	if siteURL, ok := s.cfg.Sites[rest]; ok {
		if err := s.system.OpenURL(siteURL); err != nil {
			s.log.WithFields(logrus.Fields{
				"turn_id": contextPkg.GetTurnID(ctx),
				"site":    rest,
				"error":   err.Error(),
			}).Error("Failed to open site")
		}
		s.voice.Speak(ctx, "Opening Sir")

		return assistant.DispatchResult{Response: "Opening " + rest, Continue: true}
	}

	s.voice.Speak(ctx, "Ok sir")

	query := stripTokens(rest, "search")
	if err := s.system.DesktopSearch(query); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"query":   query,
			"error":   err.Error(),
		}).Error("Desktop search failed")
	}

	return assistant.DispatchResult{Response: "Searching for " + query, Continue: true}
}

func (s *assistantService) handlePlay(ctx context.Context, clause string) assistant.DispatchResult {
	query := stripTokens(clause, s.cfg.WakeWord, "play")

	s.voice.Speak(ctx, "Playing sir")

	if err := s.system.PlayOnYouTube(ctx, query); err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"query":   query,
			"error":   err.Error(),
		}).Error("Media playback failed")
	}

	return assistant.DispatchResult{Response: "Playing " + query, Continue: true}
}

func (s *assistantService) handleAI(ctx context.Context, clause string) assistant.DispatchResult {
	reply := s.askAI(ctx, clause)
	s.voice.Speak(ctx, reply)

	return assistant.DispatchResult{Response: reply, Continue: true}
}

// stripTokens removes the given substrings and squashes the leftover
// whitespace, mirroring how spoken verbs and the wake word are peeled off
// a clause before lookups.
func stripTokens(s string, tokens ...string) string {
	for _, t := range tokens {
		s = strings.ReplaceAll(s, t, "")
	}
	return strings.Join(strings.Fields(s), " ")
}
