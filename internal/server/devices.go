package server

import (
	"log"
	"net/http"

	"github.com/medimind/medimind-server/internal/storage"
)

func registerDeviceRoutes(mux *http.ServeMux, store ReminderStore) {
	mux.HandleFunc("GET /mock-device-data", func(w http.ResponseWriter, r *http.Request) {
		readings, err := store.ListWearableReadings()
		if err != nil {
			log.Printf("list wearable readings error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch mock device data")
			return
		}
		if readings == nil {
			readings = []storage.WearableReading{}
		}
		writeJSON(w, http.StatusOK, readings)
	})
}
