package fulfillment

import (
	"errors"
	"fmt"
)

// Error taxonomy for the pipeline. Adapters wrap these sentinels so callers
// can classify failures with errors.Is without depending on transport
// details.
var (
	// ErrRemoteUnavailable covers transport-level failures on either
	// collaborator: connection refused, timeout, 5xx.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrOrderNotFound means the Order service has no order with that id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrLabelGenerationFailed means the Shipping service rejected the label
	// request or returned an unusable result.
	ErrLabelGenerationFailed = errors.New("label generation failed")

	// ErrArtifactWriteFailed means the label document could not be stored.
	ErrArtifactWriteFailed = errors.New("label artifact write failed")

	// ErrUpdateRejected means the Order service refused the tracking number
	// update.
	ErrUpdateRejected = errors.New("tracking number update rejected")

	// ErrInvalidOrderCount means the requested batch size is outside
	// [0, len(pending)].
	ErrInvalidOrderCount = errors.New("invalid order count")
)

// StageError reports which order and which stage failed. The underlying
// cause keeps its sentinel, so errors.Is still works through it.
type StageError struct {
	OrderID string
	Stage   Stage
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("order %s: stage %s: %v", e.OrderID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
