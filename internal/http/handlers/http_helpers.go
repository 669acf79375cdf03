package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// serverError reports an infrastructure failure. These are not recovered
// from: the operator sees a failed page and the cause goes to the log.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zap.L().Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, msg, http.StatusInternalServerError)
}

// flashAndRedirect queues a message for the next render and sends the browser
// back to target, which re-runs the page against fresh data.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, target string, level session.Level, msg string) {
	sid := session.ID(r.Context())
	if sid != "" {
		if err := flashStore.Push(r.Context(), sid, session.Flash{Level: level, Message: msg}); err != nil {
			zap.L().Warn("could not store flash message", zap.String("session", sid), zap.Error(err))
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
