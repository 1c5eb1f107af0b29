package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "DB_PATH", "SESSION_TTL", "SWEEP_INTERVAL",
		"RECOGNIZE_TIMEOUT", "STT_PROVIDER", "DEEPGRAM_MODEL",
		"GOOGLE_CREDENTIALS_FILE", "CHAT_MODEL", "SUMMARY_MODEL",
		"PREDICT_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "DEEPGRAM_API_KEY",
	} {
		t.Setenv(EnvPrefix+key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":3000" {
		t.Fatalf("expected default listen_addr, got %q", cfg.ListenAddr)
	}
	if cfg.DBPath != "data/medimind.db" {
		t.Fatalf("expected default db_path, got %q", cfg.DBPath)
	}
	if cfg.SessionTTL != "1h" {
		t.Fatalf("expected default session_ttl, got %q", cfg.SessionTTL)
	}
	if cfg.STTProvider != "google" {
		t.Fatalf("expected default stt_provider, got %q", cfg.STTProvider)
	}
	if cfg.ChatModel != "gemini/gemini-2.0-flash" {
		t.Fatalf("expected default chat_model, got %q", cfg.ChatModel)
	}
	if cfg.PredictURL != "http://localhost:5000" {
		t.Fatalf("expected default predict_url, got %q", cfg.PredictURL)
	}
}

func TestYAMLLoading(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
listen_addr: ":8080"
db_path: /custom/db.sqlite
session_ttl: 30m
sweep_interval: 15m
recognize_timeout: 2m
stt_provider: deepgram
deepgram_model: nova-3
chat_model: openai/gpt-4o
predict_url: http://predict:5000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvPrefix+"DEEPGRAM_API_KEY", "key")
	cfg, _, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected yaml listen_addr, got %q", cfg.ListenAddr)
	}
	if cfg.DBPath != "/custom/db.sqlite" {
		t.Fatalf("expected yaml db_path, got %q", cfg.DBPath)
	}
	if cfg.SessionTTL != "30m" {
		t.Fatalf("expected yaml session_ttl, got %q", cfg.SessionTTL)
	}
	if cfg.STTProvider != "deepgram" {
		t.Fatalf("expected yaml stt_provider, got %q", cfg.STTProvider)
	}
	if cfg.DeepgramModel != "nova-3" {
		t.Fatalf("expected yaml deepgram_model, got %q", cfg.DeepgramModel)
	}
	if cfg.ChatModel != "openai/gpt-4o" {
		t.Fatalf("expected yaml chat_model, got %q", cfg.ChatModel)
	}
	if cfg.PredictURL != "http://predict:5000" {
		t.Fatalf("expected yaml predict_url, got %q", cfg.PredictURL)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
db_path: /from/yaml
chat_model: gemini/from-yaml
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	clearEnv(t)
	t.Setenv(EnvPrefix+"DB_PATH", "/from/env")
	t.Setenv(EnvPrefix+"CHAT_MODEL", "openai/from-env")
	t.Setenv(EnvPrefix+"LISTEN_ADDR", ":9000")

	cfg, _, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/from/env" {
		t.Fatalf("expected env override for db_path, got %q", cfg.DBPath)
	}
	if cfg.ChatModel != "openai/from-env" {
		t.Fatalf("expected env override for chat_model, got %q", cfg.ChatModel)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected env override for listen_addr, got %q", cfg.ListenAddr)
	}
}

func TestSecretsFromEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"GEMINI_API_KEY", "gm-secret")
	t.Setenv(EnvPrefix+"OPENAI_API_KEY", "oai-secret")
	t.Setenv(EnvPrefix+"DEEPGRAM_API_KEY", "dg-secret")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiAPIKey != "gm-secret" {
		t.Fatalf("expected gemini key from env, got %q", cfg.GeminiAPIKey)
	}
	if cfg.OpenAIAPIKey != "oai-secret" {
		t.Fatalf("expected openai key from env, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.DeepgramAPIKey != "dg-secret" {
		t.Fatalf("expected deepgram key from env, got %q", cfg.DeepgramAPIKey)
	}
}

func TestSecretsIgnoredInYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
gemini_api_key: should-be-ignored
deepgram_api_key: also-ignored
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiAPIKey != "" {
		t.Fatalf("expected empty gemini key (yaml should be ignored), got %q", cfg.GeminiAPIKey)
	}
	if cfg.DeepgramAPIKey != "" {
		t.Fatalf("expected empty deepgram key (yaml should be ignored), got %q", cfg.DeepgramAPIKey)
	}
}

func TestValidationWarnings(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"STT_PROVIDER", "deepgram")

	_, warnings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var deepgramWarning, geminiWarning bool
	for _, w := range warnings {
		if strings.Contains(w, "Deepgram") {
			deepgramWarning = true
		}
		if strings.Contains(w, "Gemini") {
			geminiWarning = true
		}
	}

	if !deepgramWarning {
		t.Fatalf("expected Deepgram warning when key is missing, got warnings: %v", warnings)
	}
	if !geminiWarning {
		t.Fatalf("expected Gemini warning when key is missing, got warnings: %v", warnings)
	}
}

func TestUnknownProviderFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"STT_PROVIDER", "whisper-local")
	t.Setenv(EnvPrefix+"GEMINI_API_KEY", "key")
	t.Setenv(EnvPrefix+"GOOGLE_CREDENTIALS_FILE", "/path/creds.json")

	cfg, warnings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.STTProvider != "google" {
		t.Fatalf("expected fallback to google, got %q", cfg.STTProvider)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "stt_provider") {
		t.Fatalf("expected stt_provider warning, got: %v", warnings)
	}
}

func TestValidationNoWarningsWhenConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"GEMINI_API_KEY", "key")
	t.Setenv(EnvPrefix+"GOOGLE_CREDENTIALS_FILE", "/path/creds.json")

	_, warnings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings when fully configured, got: %v", warnings)
	}
}

func TestInvalidDurationWarning(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"GEMINI_API_KEY", "key")
	t.Setenv(EnvPrefix+"GOOGLE_CREDENTIALS_FILE", "/path/creds.json")
	t.Setenv(EnvPrefix+"SESSION_TTL", "not-a-duration")

	cfg, warnings, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(warnings) != 1 || !strings.Contains(warnings[0], "session_ttl") {
		t.Fatalf("expected session_ttl warning, got: %v", warnings)
	}

	if cfg.ParsedSessionTTL() != time.Hour {
		t.Fatalf("expected fallback to 1h, got %v", cfg.ParsedSessionTTL())
	}
}

func TestParsedDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"GEMINI_API_KEY", "key")
	t.Setenv(EnvPrefix+"SESSION_TTL", "45m")
	t.Setenv(EnvPrefix+"SWEEP_INTERVAL", "10m")
	t.Setenv(EnvPrefix+"RECOGNIZE_TIMEOUT", "30s")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ParsedSessionTTL() != 45*time.Minute {
		t.Fatalf("expected 45m session ttl, got %v", cfg.ParsedSessionTTL())
	}
	if cfg.ParsedSweepInterval() != 10*time.Minute {
		t.Fatalf("expected 10m sweep interval, got %v", cfg.ParsedSweepInterval())
	}
	if cfg.ParsedRecognizeTimeout() != 30*time.Second {
		t.Fatalf("expected 30s recognize timeout, got %v", cfg.ParsedRecognizeTimeout())
	}
}

func TestMissingConfigFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, _, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load should not fail for missing config file, got: %v", err)
	}

	if cfg.DBPath != "data/medimind.db" {
		t.Fatalf("expected defaults when config file missing, got db_path=%q", cfg.DBPath)
	}
}

func TestInvalidConfigFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte(":::invalid yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	clearEnv(t)

	_, _, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid yaml, got nil")
	}
}
