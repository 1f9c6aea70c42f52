package config

import (
	"context"
	"fmt"
	"strings"

	"JarvisGolang/database/postgres"
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	assistantService "JarvisGolang/internal/api/assistant/service"
	historyHandler "JarvisGolang/internal/api/history/handler"
	historyService "JarvisGolang/internal/api/history/service"
	"JarvisGolang/internal/middleware"
	"JarvisGolang/internal/voice"
	"JarvisGolang/pkg/audio"
	"JarvisGolang/pkg/gemini"
	"JarvisGolang/pkg/redis"
	"JarvisGolang/pkg/smtp"
	"JarvisGolang/pkg/system"
	"JarvisGolang/pkg/utils"
	"JarvisGolang/pkg/whatsapp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type AssistantOption func(*Assistant) error

// Assistant owns every long-lived collaborator: the voice loop in the
// foreground and the read-only HTTP surface in the background.
type Assistant struct {
	cfg            Config
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	systemActions  system.ItfSystem
	voice          voice.IVoice
	dispatcher     assistantService.IAssistantService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewAssistant(options ...AssistantOption) (*Assistant, error) {
	assistant := &Assistant{}

	for _, option := range options {
		if err := option(assistant); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if assistant.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if assistant.voice == nil {
		return nil, fmt.Errorf("voice pipeline is required")
	}

	return assistant, nil
}

func WithConfig(cfg Config) AssistantOption {
	return func(a *Assistant) error {
		a.cfg = cfg
		return nil
	}
}

func WithLogger(logger *logrus.Logger) AssistantOption {
	return func(a *Assistant) error {
		a.log = logger
		return nil
	}
}

func WithFiber(fiberApp *fiber.App) AssistantOption {
	return func(a *Assistant) error {
		a.engine = fiberApp
		return nil
	}
}

func WithValidator(validator *validator.Validate) AssistantOption {
	return func(a *Assistant) error {
		a.validator = validator
		return nil
	}
}

func WithDatabase() AssistantOption {
	return func(a *Assistant) error {
		db, err := postgres.New(a.cfg.DB)
		if err != nil {
			if a.log != nil {
				a.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}

		a.db = db
		return nil
	}
}

func WithRedisServer() AssistantOption {
	return func(a *Assistant) error {
		a.redisServer = redis.New(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB, a.log)
		return nil
	}
}

func WithSMTPMailer() AssistantOption {
	return func(a *Assistant) error {
		a.smtpMailer = smtp.New(a.cfg.SMTPMail, a.cfg.SMTPPassword)
		return nil
	}
}

func WithWhatsappClient() AssistantOption {
	return func(a *Assistant) error {
		client, err := whatsapp.New(postgres.FormatDSN(a.cfg.DB))
		if err != nil {
			if a.log != nil {
				a.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		a.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() AssistantOption {
	return func(a *Assistant) error {
		client, err := gemini.NewGeminiClient(a.cfg.GeminiAPIKey, a.cfg.GeminiModel, assistantService.SystemPrompt)
		if err != nil {
			if a.log != nil {
				a.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		a.geminiClient = client
		return nil
	}
}

func WithSystemActions() AssistantOption {
	return func(a *Assistant) error {
		a.systemActions = system.New(a.log)
		return nil
	}
}

func WithVoice() AssistantOption {
	return func(a *Assistant) error {
		mic := audio.NewMicrophone(a.log)
		stt := audio.NewTranscriptionService(a.cfg.OpenAIAPIKey)
		tts := audio.NewTTSService(a.cfg.ElevenLabsAPIKey, a.cfg.ElevenLabsVoiceID)
		player := audio.NewPlayer()

		v, err := voice.New(a.log, mic, stt, tts, player)
		if err != nil {
			return fmt.Errorf("failed to open microphone: %w", err)
		}

		a.voice = v
		return nil
	}
}

func WithMiddleware() AssistantOption {
	return func(a *Assistant) error {
		if a.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		a.middleware = middleware.New(a.log)
		return nil
	}
}

func WithUtils() AssistantOption {
	return func(a *Assistant) error {
		a.utils = utils.New()
		return nil
	}
}

func (a *Assistant) RegisterHandlers() {
	repo := assistantRepository.New(a.db, a.log)

	a.dispatcher = assistantService.New(
		a.log,
		repo,
		a.voice,
		a.geminiClient,
		a.smtpMailer,
		a.whatsappClient,
		a.systemActions,
		a.redisServer,
		a.utils,
		assistantService.Config{
			WakeWord:      a.cfg.WakeWord,
			Sites:         a.cfg.Sites,
			ExportPath:    a.cfg.ExportPath,
			CountryPrefix: a.cfg.CountryPrefix,
		},
	)

	historyServices := historyService.New(a.log, repo)
	historyHandlers := historyHandler.New(a.log, a.validator, a.middleware, historyServices)

	a.setupHealthCheck()
	a.handlers = append(a.handlers, historyHandlers)
}

func (a *Assistant) setupHealthCheck() {
	if a.engine == nil {
		return
	}

	a.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Jarvis is Healthy!",
		})
	})
}

// Run serves the HTTP surface in the background and blocks on the voice
// loop until the context is cancelled or a shutdown turn ends the session.
func (a *Assistant) Run(ctx context.Context) error {
	if a.engine != nil {
		router := a.engine.Group("/api/v1")
		a.engine.Use(a.middleware.NewRequestIDMiddleware())
		a.engine.Use(middleware.LoggerConfig())

		for _, h := range a.handlers {
			h.Start(router)
		}

		go func() {
			if err := a.engine.Listen(fmt.Sprintf(":%s", a.cfg.AppPort)); err != nil {
				a.log.Errorf("HTTP server stopped: %v", err)
			}
		}()
	}

	return a.runLoop(ctx)
}

func (a *Assistant) Close() {
	if a.voice != nil {
		a.voice.Close()
	}
	if a.whatsappClient != nil {
		a.whatsappClient.Disconnect()
	}
	if a.geminiClient != nil {
		a.geminiClient.Close()
	}
	if a.engine != nil {
		a.engine.Shutdown()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// runLoop is the session loop: wait for the wake word once, then keep
// dispatching utterances until a stop clause or a terminal turn clears the
// continuation flag, at which point the loop returns and the process exits.
func (a *Assistant) runLoop(ctx context.Context) error {
	if err := a.voice.WaitForWakeWord(ctx, a.cfg.WakeWord); err != nil {
		return err
	}

	a.voice.Speak(ctx, "sir..")

	active := true
	for active {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		heard := a.voice.Listen(ctx)
		if heard == voice.Sentinel {
			continue
		}
		if !strings.Contains(heard, a.cfg.WakeWord) {
			continue
		}

		for _, clause := range splitClauses(heard) {
			if a.isStopClause(clause) {
				a.voice.Speak(ctx, "Goodbye sir.")
				active = false
				continue
			}

			result := a.dispatcher.Dispatch(ctx, clause)
			if !result.Continue {
				active = false
			}
		}
	}

	return nil
}

// A clause only counts as a stop request when it carries its own wake word
// alongside a stop synonym, so "jarvis stop" inside a longer utterance
// cannot be triggered by a bare "stop".
func (a *Assistant) isStopClause(clause string) bool {
	if !strings.Contains(clause, a.cfg.WakeWord) {
		return false
	}
	return strings.Contains(clause, "stop") || strings.Contains(clause, "close")
}

// splitClauses cuts an utterance on the standalone word "and" so each part
// is dispatched separately, left to right. Substrings like "band" survive.
func splitClauses(utterance string) []string {
	words := strings.Fields(utterance)

	var clauses []string
	var current []string
	for _, w := range words {
		if w == "and" {
			if len(current) > 0 {
				clauses = append(clauses, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		clauses = append(clauses, strings.Join(current, " "))
	}

	return clauses
}
