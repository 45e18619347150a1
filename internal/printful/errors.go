package printful

import (
	"fmt"
	"time"
)

// APIError carries a non-2xx upstream response so handlers can mirror
// the status to the caller.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("printful API error %d: %s", e.StatusCode, e.Body)
}

// PrepareError wraps an item-preparation failure with the variant id it
// originated from. The whole order preparation fails; partial orders are
// never submitted.
type PrepareError struct {
	VariantID int64
	Err       error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("failed to prepare item for variant %d: %v", e.VariantID, e.Err)
}

func (e *PrepareError) Unwrap() error { return e.Err }

// CalculationError means the upstream job reported a terminal failed
// status. Not retryable by resubmission.
type CalculationError struct {
	Body string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("upstream calculation failed: %s", e.Body)
}

// TimeoutError means the polling window elapsed without the job
// reaching a terminal status. Possibly retryable by resubmitting.
type TimeoutError struct {
	Attempts int
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for calculation (%d attempts)", e.Timeout, e.Attempts)
}
