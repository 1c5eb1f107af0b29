package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"

	"github.com/medimind/medimind-server/internal/config"
	"github.com/medimind/medimind-server/internal/llm"
	"github.com/medimind/medimind-server/internal/predict"
	"github.com/medimind/medimind-server/internal/server"
	"github.com/medimind/medimind-server/internal/storage"
	"github.com/medimind/medimind-server/internal/summary"
	"github.com/medimind/medimind-server/internal/transcribe"
	"github.com/medimind/medimind-server/internal/upload"
)

func main() {
	log.Println("medimind-server: starting")

	configPath := os.Getenv(config.EnvPrefix + "CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := server.NewHub()
	chunks := upload.NewStore()

	sweeper := upload.NewSweeper(chunks, cfg.ParsedSessionTTL(), cfg.ParsedSweepInterval())
	go sweeper.Run(ctx)

	recognizer, err := buildRecognizer(ctx, cfg)
	if err != nil {
		log.Fatalf("speech recognizer init failed: %v", err)
	}

	transcriber := transcribe.NewService(chunks, recognizer, cfg.ParsedRecognizeTimeout())

	deps := server.Deps{
		Chunks:      chunks,
		Transcriber: transcriber,
		Store:       store,
		Predictor:   predict.NewClient(cfg.PredictURL, 30*time.Second),
	}

	if chat, chatErr := buildLLM(cfg.ChatModel, cfg); chatErr != nil {
		log.Printf("warning: chatbot disabled: %v", chatErr)
	} else {
		deps.Chat = chat
	}

	if sumClient, sumErr := buildLLM(cfg.SummaryModel, cfg); sumErr != nil {
		log.Printf("warning: summarization disabled: %v", sumErr)
	} else {
		deps.Summarizer = summary.New(sumClient)
	}

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: server.Handler(hub, deps)}
	go func() {
		log.Printf("medimind-server: listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("medimind-server: shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("warning: http shutdown failed: %v", err)
	}
}

func buildRecognizer(ctx context.Context, cfg config.Config) (transcribe.Recognizer, error) {
	switch cfg.STTProvider {
	case "deepgram":
		return transcribe.NewDeepgramRecognizer(cfg.DeepgramAPIKey, cfg.DeepgramModel), nil
	default:
		var opts []option.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
		}
		client, err := speech.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("create google speech client: %w", err)
		}
		return transcribe.NewGoogleRecognizer(client), nil
	}
}

func buildLLM(model string, cfg config.Config) (llm.Client, error) {
	provider, name, err := llm.ParseModel(model)
	if err != nil {
		return nil, err
	}

	var key string
	switch provider {
	case "gemini":
		key = cfg.GeminiAPIKey
	case "openai":
		key = cfg.OpenAIAPIKey
	}
	if key == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", provider)
	}

	return llm.NewClient(provider, key, name)
}
