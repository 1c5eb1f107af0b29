package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the namespace prefix for all MediMind server environment
// variables.
const EnvPrefix = "MEDIMIND_"

// Config holds all application configuration. Secrets (API keys) are loaded
// exclusively from environment variables and never appear in the config file.
type Config struct {
	ListenAddr            string `yaml:"listen_addr"`
	DBPath                string `yaml:"db_path"`
	SessionTTL            string `yaml:"session_ttl"`
	SweepInterval         string `yaml:"sweep_interval"`
	RecognizeTimeout      string `yaml:"recognize_timeout"`
	STTProvider           string `yaml:"stt_provider"`
	DeepgramModel         string `yaml:"deepgram_model"`
	GoogleCredentialsFile string `yaml:"google_credentials_file"`
	ChatModel             string `yaml:"chat_model"`
	SummaryModel          string `yaml:"summary_model"`
	PredictURL            string `yaml:"predict_url"`

	// Secrets — env vars only, never serialized to YAML.
	GeminiAPIKey   string `yaml:"-"`
	OpenAIAPIKey   string `yaml:"-"`
	DeepgramAPIKey string `yaml:"-"`
}

func defaults() Config {
	return Config{
		ListenAddr:       ":3000",
		DBPath:           "data/medimind.db",
		SessionTTL:       "1h",
		SweepInterval:    "1h",
		RecognizeTimeout: "90s",
		STTProvider:      "google",
		DeepgramModel:    "nova-2",
		ChatModel:        "gemini/gemini-2.0-flash",
		SummaryModel:     "gemini/gemini-2.0-flash",
		PredictURL:       "http://localhost:5000",
	}
}

// Load reads configuration from a YAML file (if it exists), applies
// environment variable overrides, loads secrets, and validates the result.
// It returns the config, any validation warnings, and an error if the file
// exists but cannot be read or parsed.
func Load(path string) (Config, []string, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, nil, fmt.Errorf("read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	loadSecrets(&cfg)

	warnings := validate(&cfg)
	return cfg, warnings, nil
}

// ParsedSessionTTL returns SessionTTL as a time.Duration, falling back to
// one hour if the value is invalid.
func (c *Config) ParsedSessionTTL() time.Duration {
	return parseDurationOr(c.SessionTTL, time.Hour)
}

// ParsedSweepInterval returns SweepInterval as a time.Duration, falling
// back to one hour if the value is invalid.
func (c *Config) ParsedSweepInterval() time.Duration {
	return parseDurationOr(c.SweepInterval, time.Hour)
}

// ParsedRecognizeTimeout returns RecognizeTimeout as a time.Duration,
// falling back to 90 seconds if the value is invalid.
func (c *Config) ParsedRecognizeTimeout() time.Duration {
	return parseDurationOr(c.RecognizeTimeout, 90*time.Second)
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv(EnvPrefix + "SWEEP_INTERVAL"); v != "" {
		cfg.SweepInterval = v
	}
	if v := os.Getenv(EnvPrefix + "RECOGNIZE_TIMEOUT"); v != "" {
		cfg.RecognizeTimeout = v
	}
	if v := os.Getenv(EnvPrefix + "STT_PROVIDER"); v != "" {
		cfg.STTProvider = v
	}
	if v := os.Getenv(EnvPrefix + "DEEPGRAM_MODEL"); v != "" {
		cfg.DeepgramModel = v
	}
	if v := os.Getenv(EnvPrefix + "GOOGLE_CREDENTIALS_FILE"); v != "" {
		cfg.GoogleCredentialsFile = v
	}
	if v := os.Getenv(EnvPrefix + "CHAT_MODEL"); v != "" {
		cfg.ChatModel = v
	}
	if v := os.Getenv(EnvPrefix + "SUMMARY_MODEL"); v != "" {
		cfg.SummaryModel = v
	}
	if v := os.Getenv(EnvPrefix + "PREDICT_URL"); v != "" {
		cfg.PredictURL = v
	}
}

func loadSecrets(cfg *Config) {
	cfg.GeminiAPIKey = os.Getenv(EnvPrefix + "GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv(EnvPrefix + "OPENAI_API_KEY")
	cfg.DeepgramAPIKey = os.Getenv(EnvPrefix + "DEEPGRAM_API_KEY")
}

func validate(cfg *Config) []string {
	var warnings []string

	switch cfg.STTProvider {
	case "google":
		if cfg.GoogleCredentialsFile == "" {
			warnings = append(warnings, "Google credentials file not configured — falling back to application default credentials.")
		}
	case "deepgram":
		if cfg.DeepgramAPIKey == "" {
			warnings = append(warnings, "Deepgram API key not configured — transcription is disabled. Set "+EnvPrefix+"DEEPGRAM_API_KEY.")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown stt_provider %q — using google.", cfg.STTProvider))
		cfg.STTProvider = "google"
	}

	if cfg.GeminiAPIKey == "" {
		warnings = append(warnings, "Gemini API key not configured — chatbot replies are disabled. Set "+EnvPrefix+"GEMINI_API_KEY.")
	}

	for _, field := range []struct{ name, value string }{
		{"session_ttl", cfg.SessionTTL},
		{"sweep_interval", cfg.SweepInterval},
		{"recognize_timeout", cfg.RecognizeTimeout},
	} {
		if _, err := time.ParseDuration(field.value); err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid %s %q — using default.", field.name, field.value))
		}
	}

	return warnings
}
