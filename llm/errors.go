package llm

import (
	"errors"
	"fmt"
)

// Error represents a provider-neutral LLM error.
// Vendor failures are collapsed into a single provider error; no vendor
// error taxonomy survives the boundary.
type Error struct {
	Type        ErrorType
	Provider    string
	Message     string
	ProviderErr error // Original provider-specific error
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeInvalidCredential ErrorType = "invalid_credential"
	ErrorTypeInvalidArgument   ErrorType = "invalid_argument"
	ErrorTypeProvider          ErrorType = "provider"
	ErrorTypeRateLimit         ErrorType = "rate_limit"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ProviderErr != nil {
		return e.Message + ": " + e.ProviderErr.Error()
	}
	return e.Message
}

// Unwrap returns the underlying provider error.
func (e *Error) Unwrap() error {
	return e.ProviderErr
}

func isType(err error, t ErrorType) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == t
	}
	return false
}

// IsInvalidCredentialError checks if an error reports a missing or empty API key.
func IsInvalidCredentialError(err error) bool {
	return isType(err, ErrorTypeInvalidCredential)
}

// IsInvalidArgumentError checks if an error reports a bad call argument.
func IsInvalidArgumentError(err error) bool {
	return isType(err, ErrorTypeInvalidArgument)
}

// IsProviderError checks if an error came from a vendor call.
func IsProviderError(err error) bool {
	return isType(err, ErrorTypeProvider)
}

// IsRateLimitError checks if an error is an advisory rate limit denial.
func IsRateLimitError(err error) bool {
	return isType(err, ErrorTypeRateLimit)
}

// NewInvalidCredentialError creates the error returned by constructors given an empty API key.
func NewInvalidCredentialError(provider string) *Error {
	return &Error{
		Type:     ErrorTypeInvalidCredential,
		Provider: provider,
		Message:  fmt.Sprintf("%s: API key cannot be empty", provider),
	}
}

// NewInvalidArgumentError creates a new invalid argument error.
func NewInvalidArgumentError(provider, message string) *Error {
	return &Error{
		Type:     ErrorTypeInvalidArgument,
		Provider: provider,
		Message:  message,
	}
}

// NewProviderError wraps a vendor failure. The message reads "<provider> API error".
func NewProviderError(provider string, providerErr error) *Error {
	return &Error{
		Type:        ErrorTypeProvider,
		Provider:    provider,
		Message:     fmt.Sprintf("%s API error", provider),
		ProviderErr: providerErr,
	}
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(provider, message string) *Error {
	return &Error{
		Type:     ErrorTypeRateLimit,
		Provider: provider,
		Message:  message,
	}
}
