package app

import (
	"net/http"

	"github.com/hatif03/researcher/internal/logger"
)

// TimestampLayout is the format of the /api/test timestamp, local time with
// microseconds (e.g. "2026-10-19 14:03:27.512094").
const TimestampLayout = "2006-01-02 15:04:05.000000"

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type testResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

func (a *App) root(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Info().Msg("Root endpoint was called!")

	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Welcome to DeepR API"})
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Info().Msg("Health check endpoint was called!")

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "healthy"})
}

// test never looks at credentials: it exists so clients can verify
// connectivity regardless of their auth state.
func (a *App) test(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Info().Msg("Test endpoint was called!")

	writeJSON(w, r, http.StatusOK, testResponse{
		Message:   "Test endpoint successful",
		Success:   true,
		Timestamp: a.now().Format(TimestampLayout),
	})
}
