package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

type ErrorCategory string

// Error categories for better error classification and handling
const (
	// ErrResourceNotFound is returned when a requested AWS resource doesn't exist
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrPermissionDenied is returned when AWS API access is denied
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrThrottling is returned when AWS API throttles the request
	ErrThrottling ErrorCategory = "request_throttled"

	// ErrInvalidState is returned when a resource is not in a state that
	// allows the requested operation
	ErrInvalidState ErrorCategory = "invalid_state"

	// ErrTimeout is returned when a wait on remote state exceeds its ceiling
	ErrTimeout ErrorCategory = "timeout"

	// ErrConfigurationError is returned when there's an issue with AWS configuration
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrNetworkError is returned for network-related errors accessing AWS API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInvalidInput is returned when invalid input is provided
	ErrInvalidInput ErrorCategory = "invalid_input"

	// ErrInternalError is returned for unexpected internal errors
	ErrInternalError ErrorCategory = "internal_error"
)

// Resource types used in error context
const (
	EC2ResourceType      = "EC2"
	VolumeResourceType   = "EBSVolume"
	SnapshotResourceType = "EBSSnapshot"
)

// Error represents an error that occurred during AWS operations with
// additional context about what went wrong.
type Error struct {
	// Category for programmatic error handling
	Category ErrorCategory

	// ResourceType identifies the AWS resource type (e.g., EC2, EBSVolume)
	ResourceType string

	// ResourceID identifies the specific resource ID when applicable
	ResourceID string

	// Message provides human-readable details
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s: %s [resource: %s/%s]", e.Category, e.Message, e.ResourceType, e.ResourceID)
	}
	if e.ResourceType != "" {
		return fmt.Sprintf("%s: %s [resource type: %s]", e.Category, e.Message, e.ResourceType)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewAWSError creates a new AWS error with the specified details
func NewAWSError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Underlying:   underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}

	return false
}

// IsRetryable reports whether an error is transient and worth retrying.
// Throttling and network errors are retryable; everything else, including
// timeouts on waiters, is permanent.
func IsRetryable(err error) bool {
	return IsErrorCategory(err, ErrThrottling) || IsErrorCategory(err, ErrNetworkError)
}

// ClassifyAWSError classifies an AWS error based on its API error code,
// falling back to message analysis for errors that never reached the service.
func ClassifyAWSError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewAWSError(ErrTimeout, resourceType, resourceID,
			"Operation cancelled or timed out", err)
	}

	// Typed API errors carry the service error code.
	// Reference: https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); {
		case strings.HasSuffix(code, ".NotFound") || code == "InvalidResource":
			return NewAWSError(ErrResourceNotFound, resourceType, resourceID,
				"Resource not found", err)

		case code == "UnauthorizedOperation" || code == "AuthFailure" || code == "InvalidClientTokenId":
			return NewAWSError(ErrPermissionDenied, resourceType, resourceID,
				"Access denied", err)

		case code == "RequestLimitExceeded" || code == "Throttling" || code == "ThrottlingException" ||
			code == "RequestThrottled" || code == "SnapshotCreationPerVolumeRateExceeded":
			return NewAWSError(ErrThrottling, resourceType, resourceID,
				"Request throttled", err)

		case strings.HasPrefix(code, "IncorrectState") || strings.HasSuffix(code, ".Malformed") ||
			code == "IncorrectInstanceState" || code == "VolumeInUse":
			return NewAWSError(ErrInvalidState, resourceType, resourceID,
				"Resource in invalid state for the requested operation", err)

		case strings.HasPrefix(code, "InvalidParameter") || code == "ValidationError" ||
			code == "MissingParameter":
			return NewAWSError(ErrInvalidInput, resourceType, resourceID,
				"Invalid input", err)
		}
	}

	errMsg := err.Error()

	switch {
	case contains(errMsg, "exceeded max wait time"):
		return NewAWSError(ErrTimeout, resourceType, resourceID,
			"Wait for remote state exceeded ceiling", err)

	case contains(errMsg, "no such host") ||
		contains(errMsg, "connection refused") ||
		contains(errMsg, "connection reset") ||
		contains(errMsg, "timeout"):
		return NewAWSError(ErrNetworkError, resourceType, resourceID,
			"Network error while accessing AWS API", err)

	case contains(errMsg, "could not find region") ||
		contains(errMsg, "failed to retrieve credentials"):
		return NewAWSError(ErrConfigurationError, resourceType, resourceID,
			"AWS SDK configuration error", err)

	default:
		return NewAWSError(ErrInternalError, resourceType, resourceID,
			"Internal error occurred", err)
	}
}

// contains checks if the error message contains any of the provided substrings
func contains(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
