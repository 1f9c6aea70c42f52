package assistantService

import (
	"fmt"
	"strings"

	"JarvisGolang/internal/api/assistant"
	"JarvisGolang/internal/voice"
	contextPkg "JarvisGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// emailState enumerates the steps of the email sub-dialogue so the flow is
// a flat state machine instead of nested blocking calls.
type emailState int

const (
	stateAwaitingRecipient emailState = iota
	stateAwaitingSubject
	stateAwaitingBodyChoice
	stateAwaitingDraftReview
	stateAwaitingChanges
	stateAwaitingDictation
	stateAwaitingDictationConfirm
	stateSending
	stateDone
)

func (s *assistantService) handleEmail(ctx context.Context, _ string) assistant.DispatchResult {
	response, err := s.runEmailDialogue(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"turn_id": contextPkg.GetTurnID(ctx),
			"error":   err.Error(),
		}).Error("Email dialogue failed")

		s.voice.Speak(ctx, apologyEmail)
		return assistant.DispatchResult{Response: apologyEmail, Continue: true}
	}

	return assistant.DispatchResult{Response: response, Continue: true}
}

func (s *assistantService) runEmailDialogue(ctx context.Context) (string, error) {
	var draft assistant.EmailDraft

	state := stateAwaitingRecipient
	for state != stateDone {
		switch state {
		case stateAwaitingRecipient:
			s.voice.Speak(ctx, "Whom should I send it to?")
			heard, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			draft.To = s.utils.NormalizeSpokenEmail(heard)
			state = stateAwaitingSubject

		case stateAwaitingSubject:
			s.voice.Speak(ctx, "What is the subject?")
			heard, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			draft.Subject = heard
			state = stateAwaitingBodyChoice

		case stateAwaitingBodyChoice:
			s.voice.Speak(ctx, "Should I generate the content using AI?")
			answer, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			if strings.Contains(answer, "yes") {
				draft.Body = s.askAI(ctx, emailWriterPrompt+"\nGenerate a professional email about "+draft.Subject)
				s.voice.Speak(ctx, draft.Body)
				state = stateAwaitingDraftReview
			} else {
				state = stateAwaitingDictation
			}

		case stateAwaitingDraftReview:
			s.voice.Speak(ctx, "Do you want to make any changes?")
			answer, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			if strings.Contains(answer, "yes") {
				state = stateAwaitingChanges
			} else {
				state = stateSending
			}

		case stateAwaitingChanges:
			// One revision round: the prior draft plus the requested changes
			// go back through the model.
			s.voice.Speak(ctx, "What changes do you want to make?")
			changes, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			combined := draft.Body + ". Also include: " + changes
			draft.Body = s.askAI(ctx, emailWriterPrompt+
				"\nGenerate a professional email about "+draft.Subject+
				" with the following details: "+combined)
			state = stateSending

		case stateAwaitingDictation:
			s.voice.Speak(ctx, "Tell me the content.")
			content, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			draft.Body = content
			s.voice.Speak(ctx, "Here is the content: "+content)
			s.voice.Speak(ctx, "Is this correct?")
			state = stateAwaitingDictationConfirm

		case stateAwaitingDictationConfirm:
			answer, err := s.hear(ctx)
			if err != nil {
				return "", err
			}
			if strings.Contains(answer, "yes") {
				state = stateSending
			} else {
				state = stateAwaitingDictation
			}

		case stateSending:
			s.voice.Speak(ctx, "Sending Email...")
			if err := s.mailer.SendEmail(draft.To, draft.Subject, draft.Body); err != nil {
				return "", fmt.Errorf("%w: %v", assistant.ErrEmailNotSent, err)
			}
			s.voice.Speak(ctx, "Email sent successfully")
			state = stateDone
		}
	}

	return fmt.Sprintf("Sending Email to %s | Subject: %s | Content: %s",
		draft.To, draft.Subject, draft.Body), nil
}

// hear is one blocking question turn inside a sub-dialogue. The sentinel is
// promoted to an error here because a dialogue cannot continue without an
// answer.
func (s *assistantService) hear(ctx context.Context) (string, error) {
	heard := s.voice.Listen(ctx)
	if heard == voice.Sentinel {
		return "", assistant.ErrNothingUnderstood
	}
	return heard, nil
}
