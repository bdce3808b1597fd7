package ai

import (
	"errors"
	"fmt"
)

// ConfigurationError reports missing or invalid provider settings. It is
// raised before any network call and is never retried.
type ConfigurationError struct {
	Provider Provider
	Message  string
}

func (e *ConfigurationError) Error() string {
	if e.Provider == ProviderNone {
		return e.Message
	}
	return fmt.Sprintf("%s configuration error: %s", e.Provider, e.Message)
}

// ProviderError reports a failed call: transport failure, non-2xx status
// or a response shape that carries no text. Body holds the raw response
// when one was received.
type ProviderError struct {
	Provider Provider
	Message  string
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	name := e.Provider.String()
	if e.Provider == ProviderNone {
		name = "Agent"
	}
	msg := fmt.Sprintf("%s error: %s", name, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += " (" + e.Body + ")"
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsProviderError checks whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

func configErr(p Provider, format string, args ...any) error {
	return &ConfigurationError{Provider: p, Message: fmt.Sprintf(format, args...)}
}
