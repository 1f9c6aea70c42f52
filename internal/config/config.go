package config

import (
	"os"
	"strconv"

	"JarvisGolang/database/postgres"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

// Config carries every externally supplied setting. It is loaded once in
// main and handed to constructors explicitly; nothing reads the environment
// after startup.
type Config struct {
	AppPort  string `validate:"required"`
	WakeWord string `validate:"required"`

	DB postgres.Config

	GeminiAPIKey string `validate:"required"`
	GeminiModel  string

	OpenAIAPIKey string `validate:"required"`

	ElevenLabsAPIKey  string `validate:"required"`
	ElevenLabsVoiceID string `validate:"required"`

	SMTPMail     string `validate:"omitempty,email"`
	SMTPPassword string

	CountryPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ExportPath string
	SitesPath  string

	Sites map[string]string
}

func defaultSites() map[string]string {
	return map[string]string{
		"youtube":   "https://www.youtube.com",
		"wikipedia": "https://www.wikipedia.org",
		"google":    "https://www.google.com",
		"github":    "https://github.com",
	}
}

func Load(validate *validator.Validate) (Config, error) {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := Config{
		AppPort:  getEnv("APP_PORT", "3000"),
		WakeWord: getEnv("WAKE_WORD", "jarvis"),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "jarvis"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
		SMTPMail:          os.Getenv("SMTP_MAIL"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		CountryPrefix:     getEnv("WHATSAPP_COUNTRY_PREFIX", "+91"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		ExportPath:        getEnv("CHAT_LOG_EXPORT_PATH", "log.csv"),
		SitesPath:         getEnv("SITES_PATH", "sites.json"),
	}

	cfg.Sites = loadSites(cfg.SitesPath)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadSites merges sites.json over the built-in directory. A missing or
// malformed file leaves the defaults untouched.
func loadSites(path string) map[string]string {
	sites := defaultSites()

	data, err := os.ReadFile(path)
	if err != nil {
		return sites
	}

	var fromFile map[string]string
	if err := jsoniter.Unmarshal(data, &fromFile); err != nil {
		return sites
	}

	for keyword, url := range fromFile {
		sites[keyword] = url
	}

	return sites
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
