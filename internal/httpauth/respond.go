package httpauth

import (
	"encoding/json"
	"errors"
	"net/http"
)

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

type userResponse[U any] struct {
	User     U      `json:"user"`
	Provider string `json:"provider"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, Description: description})
}

func respondWithUser[U any](w http.ResponseWriter, _ *http.Request, provider string, user U) {
	writeJSON(w, http.StatusOK, userResponse[U]{Provider: provider, User: user})
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
