package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/medimind/medimind-server/internal/storage"
)

func registerNotificationRoutes(mux *http.ServeMux, hub *Hub, store ReminderStore) {
	mux.HandleFunc("GET /notifications", func(w http.ResponseWriter, r *http.Request) {
		notifications, err := store.ListNotifications()
		if err != nil {
			log.Printf("list notifications error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch notifications")
			return
		}
		if notifications == nil {
			notifications = []storage.Notification{}
		}
		writeJSON(w, http.StatusOK, notifications)
	})

	mux.HandleFunc("POST /notifications", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title   string `json:"title"`
			Message string `json:"message"`
			Time    string `json:"time"`
			Type    string `json:"type"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		if req.Title == "" {
			req.Title = "Reminder"
		}
		if req.Message == "" {
			req.Message = "This is your default reminder message."
		}
		if req.Time == "" {
			req.Time = time.Now().Format(time.RFC3339)
		}
		if req.Type == "" {
			req.Type = "general"
		}

		reminder, err := store.CreateNotification(storage.Notification{
			Title:   req.Title,
			Message: req.Message,
			Time:    req.Time,
			Read:    false,
			Type:    req.Type,
		})
		if err != nil {
			log.Printf("create reminder error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to set reminder")
			return
		}

		hub.BroadcastNotificationCreated(reminder)
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  "Reminder set successfully!",
			"id":       reminder.ID,
			"reminder": reminder,
		})
	})
}
