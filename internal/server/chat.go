package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/medimind/medimind-server/internal/llm"
)

const chatSystemPrompt = "You are a friendly health assistant for the MediMind app. " +
	"Answer the user's health questions in plain language, keep replies short, " +
	"and recommend seeing a doctor for anything that needs a diagnosis."

func registerChatRoute(mux *http.ServeMux, chat llm.Client) {
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"reply": "Missing message in request body"})
			return
		}

		if chat == nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"reply": "Sorry, something went wrong."})
			return
		}

		reply, err := chat.Complete(r.Context(), []llm.Message{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: req.Message},
		})
		if err != nil {
			log.Printf("chat completion error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"reply": "Sorry, something went wrong."})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	})
}
