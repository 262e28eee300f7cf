package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API & LLM Specific Errors
var (
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")
	ErrModelOverloaded       = errors.New("model overloaded")
	ErrContextLengthExceeded = errors.New("context length exceeded")
	ErrInvalidAPIKey         = errors.New("invalid API key")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrEmptyCompletion       = errors.New("empty completion")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// LLM Service Specific Error Constructors
func NewRateLimitError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s service", service),
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

func NewInvalidAPIKeyError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("Invalid API key for %s service", service),
		Field:      "api_key",
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("Service %s is unavailable", service),
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

// Error Type Checkers
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsModelOverloadedError(err error) bool {
	return errors.Is(err, ErrModelOverloaded)
}

func IsInvalidAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}
