package app

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hatif03/researcher/internal/logger"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes v as a compact JSON body without a trailing newline.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error encoding response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("error writing response")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, errorResponse{Detail: "Not Found"})
}

func (a *App) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if methods := a.allowedMethods(r.URL.Path); len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
}
