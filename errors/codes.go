package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeConfig indicates a blueprint or settings record violates its constraints.
	ErrCodeConfig ErrorCode = "CONFIG"
	// ErrCodeType indicates a handler or predicate argument has an unusable type.
	ErrCodeType ErrorCode = "TYPE"
)

// Runtime errors
const (
	// ErrCodeUnresolved indicates a location could not be mapped to a segment.
	ErrCodeUnresolved ErrorCode = "UNRESOLVED"
	// ErrCodeHandlerFailure indicates a segment handler failed mid-batch.
	ErrCodeHandlerFailure ErrorCode = "HANDLER_FAILURE"
	// ErrCodeNotFound indicates a registry or loader lookup found nothing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)
