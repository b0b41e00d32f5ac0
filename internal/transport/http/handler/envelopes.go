package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tarfea/dashboard-api/internal/domain"
)

// MessageEnvelope wraps plain acknowledgement responses.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// AuthEnvelope is the login/refresh response body.
type AuthEnvelope struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user,omitempty"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}

// writeError maps domain sentinel errors onto HTTP status codes. Duplicate
// email and bad credentials both come back as 400, same as the original API.
// Anything unmapped is logged and reported as a generic 500 so internal
// details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrConflict):
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorMsg(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses a JSON request body into dst, rejecting malformed JSON.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
