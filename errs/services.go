package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Third-Party API & LLM Specific Errors
var (
	ErrRateLimitExceeded      = errors.New("rate limit exceeded")
	ErrModelOverloaded        = errors.New("model overloaded")
	ErrContextLengthExceeded  = errors.New("context length exceeded")
	ErrContentPolicyViolation = errors.New("content policy violation")
	ErrInvalidAPIKey          = errors.New("invalid API key")
	ErrServiceUnavailable     = errors.New("service unavailable")
	ErrMalformedModelOutput   = errors.New("malformed model output")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// LLM Service Specific Error Constructors
func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s service, retry after %v", service, retryAfter),
		Field:      "rate_limit",
	}
}

func NewModelOverloadedError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrModelOverloaded,
		Details:    fmt.Sprintf("Model overloaded for %s service", service),
		Field:      "model_capacity",
	}
}

func NewContextLengthError(service string, maxTokens int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrContextLengthExceeded,
		Details:    fmt.Sprintf("Context length exceeded for %s service (max: %d tokens)", service, maxTokens),
		Field:      "context_length",
	}
}

func NewContentPolicyError(service string, violation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrContentPolicyViolation,
		Details:    fmt.Sprintf("Content policy violation in %s service: %s", service, violation),
		Field:      "content_policy",
	}
}

func NewMalformedModelOutputError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrMalformedModelOutput,
		Details:    fmt.Sprintf("Could not parse %s model output", service),
		Cause:      cause,
	}
}

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsModelOverloaded(err error) bool {
	return errors.Is(err, ErrModelOverloaded)
}

func IsMalformedModelOutput(err error) bool {
	return errors.Is(err, ErrMalformedModelOutput)
}
