package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// SetResponseTime stamps the realized simulated latency (or, when a request
// fails before the simulator runs, the wall-clock elapsed time) on the
// response in seconds.
func SetResponseTime(w http.ResponseWriter, d time.Duration) {
	w.Header().Set("X-Response-Time", strconv.FormatFloat(d.Seconds(), 'f', 6, 64))
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// WriteServerError writes the 500 body used for injected and unexpected
// failures: the failure's description plus an explicit error status field.
func WriteServerError(w http.ResponseWriter, err error, logger *slog.Logger) {
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error":  err.Error(),
		"status": "error",
	}, logger)
}
