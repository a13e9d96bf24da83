// Package errors provides the error taxonomy of the estimator and its
// translation into BPMN errors for the Zeebe job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFranchiseNotFound ErrorCode = "FRANCHISE_NOT_FOUND"
	ErrCodeScenarioNotFound  ErrorCode = "SCENARIO_NOT_FOUND"

	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeTooManySlots ErrorCode = "TOO_MANY_SLOTS"

	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	ErrCodeUserInputRequired ErrorCode = "USER_INPUT_REQUIRED"

	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is reports whether err carries a StandardError with the given code.
func Is(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// As extracts the StandardError from err, if any.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	ok := stderrors.As(err, &stdErr)
	return stdErr, ok
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewFranchiseNotFoundError is returned when a franchise key is not in the
// reference data. No partial estimate is produced.
func NewFranchiseNotFoundError(franchiseKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFranchiseNotFound,
		Message:   "Franchise not found in reference data",
		Details:   fmt.Sprintf("franchiseKey: %s", franchiseKey),
		Retryable: false,
		Metadata:  map[string]interface{}{"franchiseKey": franchiseKey},
		Timestamp: time.Now().UTC(),
	}
}

func NewScenarioNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScenarioNotFound,
		Message:   "Scenario not found",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Metadata:  map[string]interface{}{"scenarioId": id},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCityTierError is advisory in lenient mode and fatal in strict mode.
func NewInvalidCityTierError(tier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Unrecognized city tier",
		Details:   fmt.Sprintf("cityTier: %q", tier),
		Retryable: false,
		Metadata:  map[string]interface{}{"cityTier": tier},
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTooManySlotsError(got, max int) *StandardError {
	return &StandardError{
		Code:      ErrCodeTooManySlots,
		Message:   "Too many comparison slots",
		Details:   fmt.Sprintf("got %d slots, at most %d allowed", got, max),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError wraps a read or write failure of the persistent
// scenario blob. It is a warning for the caller, never fatal.
func NewStorageUnavailableError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   fmt.Sprintf("Scenario storage unavailable during %s", op),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": op},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUserInputRequiredError is returned when an action needs a value the user
// did not supply, such as a scenario name or a slot designation.
func NewUserInputRequiredError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserInputRequired,
		Message:   fmt.Sprintf("Field '%s' is required", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewExternalServiceError is used for broker connectivity failures.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeFranchiseNotFound:  "FRANCHISE_NOT_FOUND",
	ErrCodeScenarioNotFound:   "SCENARIO_NOT_FOUND",
	ErrCodeInvalidInput:       "INVALID_INPUT",
	ErrCodeTooManySlots:       "INVALID_INPUT",
	ErrCodeStorageUnavailable: "STORAGE_UNAVAILABLE",
	ErrCodeUserInputRequired:  "USER_INPUT_REQUIRED",
	ErrCodeParseError:         "PARSE_ERROR",
	ErrCodeInternal:           "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStorageUnavailable, "EXTERNAL_SERVICE_ERROR":
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "USER_INPUT"):
		return "USER_INPUT"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "SLOTS") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
