package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingOrder     = errors.New("missing order parameter")
	ErrInvalidOrder     = errors.New("invalid order parameter")
	ErrInvalidEmail     = errors.New("invalid email parameter")
	ErrOrderNotFound    = errors.New("order not found")
	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ConfigError reports a required setting that was not provided.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is required", e.Key)
}

// UpstreamError is a transport or protocol failure of the order lookup.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error (status %d)", e.StatusCode)
}

// IsAuthError reports whether err came from signature verification.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) || errors.Is(err, ErrInvalidSignature)
}
