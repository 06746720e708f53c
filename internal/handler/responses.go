package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto an HTTP status and logs it at a level matching its severity
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgOperationFailed, "operation", op, "status", status, "error", err)
	} else {
		log.Info(LogMsgOperationRefused, "operation", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceError converts domain errors into HTTP status codes and user-facing messages.
// Storage outages map to 503 so clients know to retry with backoff.
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound, ErrMsgParticipantNotFound
	case errors.Is(err, domain.ErrContributionNotFound):
		return http.StatusNotFound, ErrMsgContributionNotFound
	case errors.Is(err, domain.ErrTeamNotFound):
		return http.StatusNotFound, ErrMsgTeamNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFound
	case errors.Is(err, domain.ErrUnregistered):
		return http.StatusForbidden, ErrMsgUnregistered
	case errors.Is(err, domain.ErrDuplicatePayload):
		return http.StatusConflict, ErrMsgDuplicatePayload
	case errors.Is(err, domain.ErrAlreadyDecided):
		return http.StatusConflict, ErrMsgAlreadyDecided
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return http.StatusConflict, ErrMsgAlreadyAssigned
	case errors.Is(err, domain.ErrTeamExists):
		return http.StatusConflict, ErrMsgTeamExists
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest, ErrMsgInvalidKind
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, ErrMsgInvalidPayload
	case errors.Is(err, domain.ErrInvalidOutcome):
		return http.StatusBadRequest, ErrMsgInvalidOutcome
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
