package server

import (
	"encoding/json"
	"log"
	"net/http"
)

func registerSummarizeRoute(mux *http.ServeMux, summarizer Summarizer) {
	mux.HandleFunc("POST /summarize", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Transcription string `json:"transcription"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Transcription == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing transcription in request body")
			return
		}

		if summarizer == nil {
			writeJSONError(w, http.StatusInternalServerError, "Summarization is not configured")
			return
		}

		summary, err := summarizer.Summarize(r.Context(), req.Transcription)
		if err != nil {
			log.Printf("summarize error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to summarize transcription")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
	})
}
