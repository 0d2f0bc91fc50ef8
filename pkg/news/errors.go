package news

import (
	"errors"
	"fmt"
)

// Per-call upstream failure kinds. These are absorbed by the pacer's failure
// budget and never reach the caller individually.
var (
	ErrRateLimited    = errors.New("upstream rate limit exceeded")
	ErrAuth           = errors.New("upstream rejected API key")
	ErrUpstreamFormat = errors.New("upstream response missing article feed")
	ErrUpstreamLogic  = errors.New("upstream reported an error payload")
	ErrTransient      = errors.New("transient upstream failure")
)

// Pipeline-level failures surfaced to the caller.
var (
	ErrTooManyFailures = errors.New("too many upstream failures, aborting fetch")
	ErrPipelineTimeout = errors.New("news pipeline deadline exceeded")
	ErrMissingAPIKey   = errors.New("news API key is not configured")
	ErrNotParseable    = errors.New("timestamp not parseable")
	ErrInvalidRange    = errors.New("start date is after end date")
)

// ValidationError marks bad caller input. Recoverable by correcting the
// request; HTTP handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is caller input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
