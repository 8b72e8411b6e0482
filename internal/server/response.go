package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"lol-tracker/internal/auth"
	"lol-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// apiResponse is the envelope every JSON endpoint replies with.
type apiResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	body.Timestamp = time.Now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: message, Data: data})
}

func created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}

// writeError maps a service error onto its HTTP status. Upstream response
// bodies never reach the caller; only the category does.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(w, http.StatusNotFound, "requested resource was not found")
	case errors.Is(err, domain.ErrRateLimited):
		if d, ok := domain.RetryAfter(err); ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
		}
		logger.Warn().Err(err).Msg("upstream rate limit reached")
		fail(w, http.StatusTooManyRequests, "upstream rate limit exceeded, retry later")
	case errors.Is(err, domain.ErrAuth):
		logger.Error().Err(err).Msg("upstream rejected API credential, check server configuration")
		fail(w, http.StatusBadGateway, "server configuration error: upstream credential was rejected")
	case errors.Is(err, domain.ErrUpstream):
		logger.Error().Err(err).Msg("upstream request failed")
		fail(w, http.StatusBadGateway, "upstream service unavailable")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		logger.Warn().Err(err).Msg("request abandoned before upstream answered")
		fail(w, http.StatusGatewayTimeout, "upstream request timed out")
	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, auth.ErrInvalidToken):
		fail(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		fail(w, http.StatusForbidden, "you do not have permission to perform this action")
	case errors.Is(err, domain.ErrConflict):
		fail(w, http.StatusConflict, err.Error())
	default:
		logger.Error().Err(err).Msg("unhandled error")
		fail(w, http.StatusInternalServerError, "internal server error")
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, domain.ErrUnauthorized)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "malformed JSON request body")
	}
	return nil
}

// intParam parses an optional integer query parameter; absent yields def.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func idParam(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
