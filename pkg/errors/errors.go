// Package errors provides the structured error taxonomy of the SDK.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Exit codes used by the command-line tool.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Signature or key verification failed
	ExitNotFound = 4 // Resource not found
	ExitState    = 5 // Operation not valid in the current state
)

// SDKError is the structured error type returned by every SDK package.
type SDKError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *SDKError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		for _, k := range slices.Sorted(maps.Keys(e.Details)) {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SDKError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for SDKError.
func (e *SDKError) Is(target error) bool {
	var t *SDKError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &SDKError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &SDKError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Value and encoding errors.
	ErrInvalidDataType = &SDKError{
		Code:     "INVALID_DATA_TYPE",
		Message:  "invalid data type",
		ExitCode: ExitInput,
	}

	ErrInvalidRLP = &SDKError{
		Code:     "INVALID_RLP",
		Message:  "invalid RLP value",
		ExitCode: ExitInput,
	}

	// Transaction errors.
	ErrInvalidTransactionField = &SDKError{
		Code:     "INVALID_TRANSACTION_FIELD",
		Message:  "invalid transaction field",
		ExitCode: ExitInput,
	}

	ErrNotDelegated = &SDKError{
		Code:     "NOT_DELEGATED",
		Message:  "transaction is not delegated",
		ExitCode: ExitState,
	}

	ErrUnavailableField = &SDKError{
		Code:     "UNAVAILABLE_FIELD",
		Message:  "transaction field is not available",
		ExitCode: ExitState,
	}

	// Cryptographic errors.
	ErrInvalidPrivateKey = &SDKError{
		Code:     "INVALID_PRIVATE_KEY",
		Message:  "invalid secp256k1 private key",
		ExitCode: ExitInput,
	}

	ErrInvalidSignature = &SDKError{
		Code:     "INVALID_SIGNATURE",
		Message:  "invalid secp256k1 signature",
		ExitCode: ExitAuth,
	}

	ErrInvalidMessageHash = &SDKError{
		Code:     "INVALID_MESSAGE_HASH",
		Message:  "message hash must be 32 bytes",
		ExitCode: ExitInput,
	}

	ErrSignatureMismatch = &SDKError{
		Code:     "SIGNATURE_MISMATCH",
		Message:  "signature does not match signer",
		ExitCode: ExitAuth,
	}

	// Key derivation errors.
	ErrInvalidHDKey = &SDKError{
		Code:     "INVALID_HDKEY",
		Message:  "invalid HD key derivation",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &SDKError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &SDKError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &SDKError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new SDKError with the given code and message.
func New(code, message string) *SDKError {
	return &SDKError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// derive copies the SDK error found in err's chain and lets fn edit the
// copy. Errors outside the taxonomy become GENERAL_ERROR caused by err; fn
// learns which case applies through known.
func derive(err error, fn func(d *SDKError, known bool)) error {
	if err == nil {
		return nil
	}

	var se *SDKError
	if errors.As(err, &se) {
		d := *se
		fn(&d, true)
		return &d
	}

	d := SDKError{
		Code:     ErrGeneral.Code,
		Message:  err.Error(),
		Cause:    err,
		ExitCode: ExitGeneral,
	}
	fn(&d, false)
	return &d
}

// Wrap prefixes the message of err with context. SDK errors keep their code,
// exit code and cause; other errors become GENERAL_ERROR caused by err.
func Wrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return derive(err, func(d *SDKError, known bool) {
		if known {
			d.Message = msg + ": " + d.Message
			return
		}
		d.Message = msg
	})
}

// Newf derives an error from a sentinel, replacing its message.
// The result still matches the sentinel with errors.Is.
func Newf(sentinel *SDKError, format string, args ...any) *SDKError {
	return &SDKError{
		Code:     sentinel.Code,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: sentinel.ExitCode,
	}
}

// WithDetails merges details into err. Later keys win.
func WithDetails(err error, details map[string]string) error {
	return derive(err, func(d *SDKError, _ bool) {
		merged := make(map[string]string, len(d.Details)+len(details))
		maps.Copy(merged, d.Details)
		maps.Copy(merged, details)
		d.Details = merged
	})
}

// WithSuggestion sets the suggestion shown to users.
func WithSuggestion(err error, suggestion string) error {
	return derive(err, func(d *SDKError, _ bool) {
		d.Suggestion = suggestion
	})
}

// WithCause attaches an underlying cause to an SDK error, keeping its code.
// Plain errors are joined so both stay reachable through errors.Is.
func WithCause(err, cause error) error {
	if err == nil {
		return nil
	}
	var se *SDKError
	if !errors.As(err, &se) {
		return fmt.Errorf("%w: %w", err, cause)
	}
	return derive(err, func(d *SDKError, _ bool) {
		d.Cause = cause
	})
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *SDKError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *SDKError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
