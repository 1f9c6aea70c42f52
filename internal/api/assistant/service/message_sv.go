package assistantService

import (
	"fmt"
	"strings"
	"time"

	"JarvisGolang/internal/api/assistant"
	contextPkg "JarvisGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *assistantService) handleMessage(ctx context.Context, _ string) assistant.DispatchResult {
	response, err := s.runMessageDialogue(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Message dialogue failed")

		s.voice.Speak(ctx, apologyMessage)
		return assistant.DispatchResult{Response: apologyMessage, Continue: true}
	}

	return assistant.DispatchResult{Response: response, Continue: true}
}

func (s *assistantService) runMessageDialogue(ctx context.Context) (string, error) {
	s.voice.Speak(ctx, "Whom should I send it to?")
	to, err := s.hear(ctx)
	if err != nil {
		return "", err
	}

	s.voice.Speak(ctx, "What do you want to send?")
	msg, err := s.hear(ctx)
	if err != nil {
		return "", err
	}

	s.voice.Speak(ctx, "Sending message...")

	number := s.utils.NormalizeSpokenPhone(to)
	if !strings.HasPrefix(number, "+") {
		number = s.cfg.CountryPrefix + number
	}
	// The sender wants the bare international number without the plus.
	number = strings.TrimPrefix(number, "+")

	if err := s.messenger.SendMessageAt(ctx, number, msg, time.Now().Add(time.Minute)); err != nil {
		return "", fmt.Errorf("%w: %v", assistant.ErrMessageNotSent, err)
	}

	return "Sending message to " + to + ": " + msg, nil
}
