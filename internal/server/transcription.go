package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/medimind/medimind-server/internal/transcribe"
	"github.com/medimind/medimind-server/internal/upload"
)

func registerTranscriptionRoutes(mux *http.ServeMux, hub *Hub, chunks ChunkStore, transcriber Transcriber) {
	mux.HandleFunc("POST /ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Server is running"})
	})

	mux.HandleFunc("POST /upload-chunk", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID   string `json:"sessionId"`
			ChunkIndex  *int   `json:"chunkIndex"`
			TotalChunks *int   `json:"totalChunks"`
			Chunk       string `json:"chunk"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Missing required chunk upload parameters")
			return
		}
		if req.SessionID == "" || req.ChunkIndex == nil || req.TotalChunks == nil || req.Chunk == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing required chunk upload parameters")
			return
		}

		complete, err := chunks.Ingest(req.SessionID, *req.ChunkIndex, *req.TotalChunks, req.Chunk)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidRequest) {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("chunk ingest error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Failed to process chunk",
				"details": err.Error(),
			})
			return
		}

		hub.BroadcastUploadProgress(req.SessionID, *req.ChunkIndex, *req.TotalChunks, complete)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "success",
			"sessionId":  req.SessionID,
			"chunkIndex": *req.ChunkIndex,
			"received":   true,
			"complete":   complete,
		})
	})

	mux.HandleFunc("POST /transcribe-session", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string                     `json:"sessionId"`
			Config    *transcribe.DecodingConfig `json:"config"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Missing sessionId or config")
			return
		}
		if req.SessionID == "" || req.Config == nil {
			writeJSONError(w, http.StatusBadRequest, "Missing sessionId or config")
			return
		}

		transcription, err := transcriber.Finalize(r.Context(), req.SessionID, *req.Config)
		if err != nil {
			writeTranscribeError(w, err)
			return
		}

		hub.BroadcastTranscriptionCompleted(req.SessionID)
		writeJSON(w, http.StatusOK, map[string]string{"transcription": transcription})
	})

	mux.HandleFunc("POST /transcribe", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Audio *struct {
				Content string `json:"content"`
			} `json:"audio"`
			Config *transcribe.DecodingConfig `json:"config"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "No request body provided")
			return
		}
		if req.Audio == nil {
			writeJSONError(w, http.StatusBadRequest, "No audio object provided")
			return
		}
		if req.Audio.Content == "" {
			writeJSONError(w, http.StatusBadRequest, "No audio file uploaded")
			return
		}
		if strings.TrimSpace(req.Audio.Content) == "" {
			writeJSONError(w, http.StatusBadRequest, "Empty audio content")
			return
		}
		if req.Config == nil {
			writeJSONError(w, http.StatusBadRequest, "No configuration provided")
			return
		}

		transcription, err := transcriber.Direct(r.Context(), req.Audio.Content, *req.Config)
		if err != nil {
			writeTranscribeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"transcription": transcription})
	})
}

// writeTranscribeError maps the transcription error taxonomy onto the wire
// shapes the mobile app expects.
func writeTranscribeError(w http.ResponseWriter, err error) {
	var svcErr *transcribe.ServiceError
	switch {
	case errors.Is(err, transcribe.ErrSessionNotFound):
		writeJSONError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, transcribe.ErrIncompleteUpload):
		writeJSONError(w, http.StatusBadRequest, "No audio content in session")
	case errors.Is(err, transcribe.ErrUnsupportedEncoding):
		writeJSONError(w, http.StatusBadRequest, "Invalid encoding format")
	case errors.Is(err, transcribe.ErrNoResults):
		writeJSONError(w, http.StatusBadRequest, "No transcription results")
	case errors.Is(err, transcribe.ErrInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &svcErr):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Transcription failed",
			"details": svcErr.Detail,
			"code":    svcErr.Code,
		})
	default:
		log.Printf("transcription error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Transcription failed",
			"details": err.Error(),
		})
	}
}
