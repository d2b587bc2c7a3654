package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

// writeError maps the core error taxonomy onto HTTP statuses. An expired
// credential is reported as a re-authorization prompt, never as a generic
// server error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: apperrors.ErrUserNotFound.Error()})
	case apperrors.Is(err, apperrors.ErrNoConnection):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: apperrors.ErrNoConnection.Error()})
	case apperrors.Is(err, apperrors.ErrExpiredCredential):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "QuickBooks connection requires re-authorization"})
	case apperrors.Is(err, apperrors.ErrMalformedCallback):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case apperrors.Is(err, apperrors.ErrProviderUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: apperrors.ErrProviderUnavailable.Error()})
	case apperrors.Is(err, apperrors.ErrMalformedReport):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: apperrors.ErrMalformedReport.Error()})
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}
