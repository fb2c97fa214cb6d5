package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"flyer/service"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode_response_failed", "error", err)
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// writeError reports err with the status of its kind. The raw error text is
// only included in development.
func writeError(w http.ResponseWriter, err error, dev bool) {
	status := service.StatusFor(err)
	body := Envelope{Success: false, Message: service.Message(err)}
	if dev {
		body.Error = err.Error()
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed", "status", status, "error", err)
	} else {
		slog.Info("request_rejected", "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{Success: false, Message: "Route not found"})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Envelope{Success: false, Message: "Method not allowed"})
}

func InternalError(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Internal server error"})
}
