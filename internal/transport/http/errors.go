package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/infra/rest"
	"qr-quiz-service/internal/validation"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps use case errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	var apiErr *rest.APIError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrQuizNotFound):
		writeError(w, http.StatusNotFound, domain.ErrQuizNotFound.Error())
	case errors.Is(err, domain.ErrInvalidQRCode):
		writeError(w, http.StatusNotFound, domain.ErrInvalidQRCode.Error())
	case errors.Is(err, domain.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNameNotSet):
		writeError(w, http.StatusConflict, domain.ErrNameNotSet.Error())
	case errors.Is(err, domain.ErrBackendUnavailable), errors.As(err, &apiErr):
		writeError(w, http.StatusServiceUnavailable, "result backend unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
