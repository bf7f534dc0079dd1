package trap

import "errors"

// Standard error types for trap operations
var (
	ErrMalformedPayload       = errors.New("trap: malformed payload")
	ErrChainSourceUnavailable = errors.New("trap: chain source unavailable")
	ErrSampleStale            = errors.New("trap: sample exceeds max age")
	ErrPolicyEvaluation       = errors.New("trap: trigger policy evaluation failed")
	ErrPolicyLoad             = errors.New("trap: trigger policy could not be loaded")
	ErrConfigLoad             = errors.New("trap: configuration could not be loaded")
	ErrUnauthorizedDispatch   = errors.New("trap: origin not authorized to dispatch")
)

// IsWrappingError checks if err is wrapping the target error using errors.Is.
// This is a helper for testing error wrapping.
func IsWrappingError(err, target error) bool {
	return errors.Is(err, target)
}
