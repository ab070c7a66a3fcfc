package main

import (
	"encoding/json"
	"net/http"
	"time"
)

func newEnvelope(success bool, message string, data any) envelope {
	return envelope{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// respondData writes a success envelope with a payload.
func (a *App) respondData(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, newEnvelope(true, message, data))
}

// respondFail writes a failure envelope. The message must already be
// safe for clients; raw error detail belongs in the log, not here.
func (a *App) respondFail(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, newEnvelope(false, message, nil))
}
