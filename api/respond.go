package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/guardrail"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, map[string]any{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	// Build response based on error details
	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Add details if present
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	// For expected errors, set the status code from apiErr
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// WriteViolation converts a guardrail violation to its HTTP response:
// 429 with Retry-After for rate limits, 400 for everything else. The full
// violation is returned so the frontend can render the explanation.
func (r Responder) WriteViolation(w http.ResponseWriter, v *guardrail.Violation) {
	status := http.StatusBadRequest
	if v.Type == guardrail.ViolationRateLimit {
		status = http.StatusTooManyRequests
		if v.RateLimit != nil {
			w.Header().Set("Retry-After", strconv.Itoa(v.RateLimit.RetryAfter))
		}
	}

	r.logger.Warn().
		Str("violationType", string(v.Type)).
		Str("severity", string(v.Severity)).
		Str("detected", v.Detected).
		Msg("guardrail violation")

	w.WriteHeader(status)
	r.WriteJSON(w, map[string]any{
		"status":    "blocked",
		"violation": v,
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
