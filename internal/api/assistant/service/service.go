package assistantService

import (
	"time"

	"JarvisGolang/internal/api/assistant"
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	"JarvisGolang/internal/voice"
	"JarvisGolang/pkg/gemini"
	"JarvisGolang/pkg/redis"
	"JarvisGolang/pkg/smtp"
	"JarvisGolang/pkg/system"
	"JarvisGolang/pkg/utils"
	"JarvisGolang/pkg/whatsapp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAssistantService interface {
	Dispatch(ctx context.Context, clause string) assistant.DispatchResult
}

type Config struct {
	WakeWord      string
	Sites         map[string]string
	ExportPath    string
	CountryPrefix string
	CacheTTL      time.Duration
}

type assistantService struct {
	log       *logrus.Logger
	repo      assistantRepository.Repository
	voice     voice.IVoice
	ai        gemini.IGemini
	mailer    smtp.ItfSmtp
	messenger whatsapp.IWhatsappSender
	system    system.ItfSystem
	cache     redis.IRedis
	utils     utils.IUtils
	cfg       Config
	rules     []rule
}

func New(
	log *logrus.Logger,
	repo assistantRepository.Repository,
	v voice.IVoice,
	ai gemini.IGemini,
	mailer smtp.ItfSmtp,
	messenger whatsapp.IWhatsappSender,
	sys system.ItfSystem,
	cache redis.IRedis,
	u utils.IUtils,
	cfg Config,
) IAssistantService {
	if cfg.WakeWord == "" {
		cfg.WakeWord = "jarvis"
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = "log.csv"
	}
	if cfg.CountryPrefix == "" {
		cfg.CountryPrefix = "+91"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	s := &assistantService{
		log:       log,
		repo:      repo,
		voice:     v,
		ai:        ai,
		mailer:    mailer,
		messenger: messenger,
		system:    sys,
		cache:     cache,
		utils:     u,
		cfg:       cfg,
	}
	s.rules = s.buildRules()

	return s
}
