package assistantService

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"JarvisGolang/internal/api/assistant"
	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/redis"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ask returns the model's reply for the prompt, consulting the reply cache
// first. Backend failures come back wrapped in ErrAIUnavailable.
func (s *assistantService) ask(ctx context.Context, prompt string) (string, error) {
	key := fmt.Sprintf("jarvis:reply:%x", sha256.Sum256([]byte(prompt)))

	if s.cache != nil {
		cached, err := s.cache.GetCachedReply(ctx, key)
		switch {
		case err == nil && cached != "":
			s.log.WithFields(logrus.Fields{
				"turn_id": contextPkg.GetTurnID(ctx),
			}).Debug("AI reply served from cache")
			return cached, nil
		case err != nil && !errors.Is(err, redis.ErrCacheMiss):
			s.log.WithFields(logrus.Fields{
				"turn_id": contextPkg.GetTurnID(ctx),
				"error":   err.Error(),
			}).Warn("Reply cache read failed, treating as miss")
		}
	}

	reply, err := s.ai.Ask(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", assistant.ErrAIUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.SetCachedReply(ctx, key, reply, s.cfg.CacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"turn_id": contextPkg.GetTurnID(ctx),
				"error":   err.Error(),
			}).Warn("Failed to cache AI reply")
		}
	}

	return reply, nil
}

// askAI is the spoken-path wrapper: any failure becomes the fixed fallback
// string and the cause is only logged, so errors never reach the user.
func (s *assistantService) askAI(ctx context.Context, prompt string) string {
	reply, err := s.ask(ctx, prompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Gemini API error")
		return FallbackReply
	}

	return reply
}
