package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/medimind/medimind-server/internal/llm"
	"github.com/medimind/medimind-server/internal/storage"
	"github.com/medimind/medimind-server/internal/transcribe"
)

// maxBodyBytes caps request bodies on the transcription routes. Chunked
// uploads carry base64 audio inline, so the limit is generous.
const maxBodyBytes = 100 << 20

// ChunkStore accepts indexed chunks for an upload session.
type ChunkStore interface {
	Ingest(sessionID string, chunkIndex, totalChunks int, chunk string) (complete bool, err error)
}

// Transcriber finalizes chunked sessions and transcribes direct payloads.
type Transcriber interface {
	Finalize(ctx context.Context, sessionID string, cfg transcribe.DecodingConfig) (string, error)
	Direct(ctx context.Context, payload string, cfg transcribe.DecodingConfig) (string, error)
}

// ReminderStore backs the notification feed and the mock wearable data.
type ReminderStore interface {
	CreateNotification(n storage.Notification) (storage.Notification, error)
	ListNotifications() ([]storage.Notification, error)
	ListWearableReadings() ([]storage.WearableReading, error)
}

// Summarizer condenses a consultation transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Predictor proxies the symptom-prediction service.
type Predictor interface {
	Predict(ctx context.Context, symptoms []string) (json.RawMessage, error)
	Analyze(ctx context.Context, text string) (json.RawMessage, error)
}

// Deps carries the collaborators the HTTP surface routes to. Nil fields
// disable the corresponding routes' backends; the handlers respond with the
// same error shape the mobile app already handles.
type Deps struct {
	Chunks      ChunkStore
	Transcriber Transcriber
	Store       ReminderStore
	Chat        llm.Client
	Summarizer  Summarizer
	Predictor   Predictor
}

func Handler(hub *Hub, deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
	})

	registerWSRoute(mux, hub)
	registerTranscriptionRoutes(mux, hub, deps.Chunks, deps.Transcriber)
	registerNotificationRoutes(mux, hub, deps.Store)
	registerChatRoute(mux, deps.Chat)
	registerSummarizeRoute(mux, deps.Summarizer)
	registerPredictRoutes(mux, deps.Predictor)
	registerDeviceRoutes(mux, deps.Store)

	return mux
}

func Serve(addr string, hub *Hub, deps Deps) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, Handler(hub, deps))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
