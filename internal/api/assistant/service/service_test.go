package assistantService

import (
	"io"
	"time"

	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	"JarvisGolang/internal/entity"
	"JarvisGolang/internal/voice"
	"JarvisGolang/pkg/redis"
	"JarvisGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeVoice struct {
	script []string
	spoken []string
}

func (f *fakeVoice) Listen(_ context.Context) string {
	if len(f.script) == 0 {
		return voice.Sentinel
	}
	next := f.script[0]
	f.script = f.script[1:]
	return next
}

func (f *fakeVoice) Speak(_ context.Context, text string) {
	f.spoken = append(f.spoken, text)
}

func (f *fakeVoice) WaitForWakeWord(_ context.Context, _ string) error { return nil }

func (f *fakeVoice) Close() {}

type fakeInteractionStore struct {
	created   []entity.Interaction
	rows      []entity.Interaction
	createErr error
	getErr    error
}

func (f *fakeInteractionStore) CreateInteraction(_ context.Context, command, response string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, entity.Interaction{Command: command, Response: response})
	return nil
}

func (f *fakeInteractionStore) GetAllInteractions(_ context.Context) ([]entity.Interaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows, nil
}

type fakeRepo struct {
	store     *fakeInteractionStore
	clientErr error
}

func (f *fakeRepo) NewClient(_ bool) (assistantRepository.Client, error) {
	if f.clientErr != nil {
		return assistantRepository.Client{}, f.clientErr
	}
	return assistantRepository.Client{
		Interactions: f.store,
		Commit:       func() error { return nil },
		Rollback:     func() error { return nil },
	}, nil
}

type fakeAI struct {
	reply string
	err   error
	asked []string
}

func (f *fakeAI) Ask(_ context.Context, prompt string) (string, error) {
	f.asked = append(f.asked, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeAI) Close() {}

type sentEmail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeMailer) SendEmail(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

type fakeMessenger struct {
	numbers  []string
	messages []string
	err      error
}

func (f *fakeMessenger) SendMessage(_ context.Context, phoneNumber, message string) error {
	if f.err != nil {
		return f.err
	}
	f.numbers = append(f.numbers, phoneNumber)
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessenger) SendMessageAt(ctx context.Context, phoneNumber, message string, _ time.Time) error {
	return f.SendMessage(ctx, phoneNumber, message)
}

func (f *fakeMessenger) Disconnect() error { return nil }

func (f *fakeMessenger) IsConnected() bool { return true }

type fakeSystem struct {
	shutdowns int
	restarts  int
	opened    []string
	files     []string
	searched  []string
	played    []string
}

func (f *fakeSystem) Shutdown() error {
	f.shutdowns++
	return nil
}

func (f *fakeSystem) Restart() error {
	f.restarts++
	return nil
}

func (f *fakeSystem) OpenURL(rawURL string) error {
	f.opened = append(f.opened, rawURL)
	return nil
}

func (f *fakeSystem) OpenFile(path string) error {
	f.files = append(f.files, path)
	return nil
}

func (f *fakeSystem) DesktopSearch(query string) error {
	f.searched = append(f.searched, query)
	return nil
}

func (f *fakeSystem) PlayOnYouTube(_ context.Context, query string) error {
	f.played = append(f.played, query)
	return nil
}

type fakeCache struct {
	entries map[string]string
}

func (f *fakeCache) SetCachedReply(_ context.Context, key, reply string, _ time.Duration) error {
	if f.entries == nil {
		f.entries = map[string]string{}
	}
	f.entries[key] = reply
	return nil
}

func (f *fakeCache) GetCachedReply(_ context.Context, key string) (string, error) {
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return "", redis.ErrCacheMiss
}

type serviceFixture struct {
	svc       IAssistantService
	voice     *fakeVoice
	store     *fakeInteractionStore
	ai        *fakeAI
	mailer    *fakeMailer
	messenger *fakeMessenger
	system    *fakeSystem
	cache     *fakeCache
}

func newServiceFixture() *serviceFixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &serviceFixture{
		voice:     &fakeVoice{},
		store:     &fakeInteractionStore{},
		ai:        &fakeAI{reply: "ai says hello"},
		mailer:    &fakeMailer{},
		messenger: &fakeMessenger{},
		system:    &fakeSystem{},
		cache:     &fakeCache{},
	}

	f.svc = New(
		log,
		&fakeRepo{store: f.store},
		f.voice,
		f.ai,
		f.mailer,
		f.messenger,
		f.system,
		f.cache,
		utils.New(),
		Config{
			WakeWord: "jarvis",
			Sites: map[string]string{
				"youtube": "https://www.youtube.com",
				"github":  "https://github.com",
			},
		},
	)

	return f
}
