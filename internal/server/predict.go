package server

import (
	"encoding/json"
	"log"
	"net/http"
)

func registerPredictRoutes(mux *http.ServeMux, predictor Predictor) {
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var symptoms []string
		if err := json.NewDecoder(r.Body).Decode(&symptoms); err != nil || len(symptoms) == 0 {
			writeJSONError(w, http.StatusBadRequest, "No symptoms provided")
			return
		}

		result, err := predictor.Predict(r.Context(), symptoms)
		if err != nil {
			log.Printf("predict proxy error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to contact Flask service")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result)
	})

	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing text input")
			return
		}

		result, err := predictor.Analyze(r.Context(), req.Text)
		if err != nil {
			log.Printf("analyze proxy error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to contact Flask service")
			return
		}

		writeJSON(w, http.StatusOK, map[string]json.RawMessage{"flaskResult": result})
	})
}
