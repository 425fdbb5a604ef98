package order

import (
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
)

// Stage identifies one timed transition in an order's life. Each stage fires
// at a fixed offset from order creation and completes the step at the same
// index. Step 0 ("Order placed") has no stage; it completes at creation.
type Stage int

const (
	// StageConfirmed acknowledges the order at T+30s.
	StageConfirmed Stage = iota + 1

	// StagePrepared marks preparation (Delivery) or vehicle arrangement
	// (Transport) at T+120s.
	StagePrepared

	// StageEnRoute marks the order as underway at T+300s.
	StageEnRoute

	// StageDelivered completes the order at T+480s.
	StageDelivered
)

// stageOffsets is the fixed, total-ordered timetable measured from createdAt.
func stageOffsets() map[Stage]time.Duration {
	return map[Stage]time.Duration{
		StageConfirmed: 30 * time.Second,
		StagePrepared:  120 * time.Second,
		StageEnRoute:   300 * time.Second,
		StageDelivered: 480 * time.Second,
	}
}

// Stages returns all stages in strictly increasing offset order.
func Stages() []Stage {
	return []Stage{StageConfirmed, StagePrepared, StageEnRoute, StageDelivered}
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if _, ok := stageOffsets()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
func (s Stage) String() string {
	switch s {
	case StageConfirmed:
		return "Confirmed"
	case StagePrepared:
		return "Prepared"
	case StageEnRoute:
		return "EnRoute"
	case StageDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// Offset returns the delay from order creation at which this stage is due.
func (s Stage) Offset() time.Duration {
	return stageOffsets()[s]
}

// StepIndex returns the index of the step this stage completes.
func (s Stage) StepIndex() int {
	return int(s)
}

// Status returns the coarse lifecycle status the order holds once this
// stage has been applied.
func (s Stage) Status() Status {
	switch s {
	case StageConfirmed:
		return Confirmed
	case StageDelivered:
		return Completed
	default:
		return InProgress
	}
}

// LocationLabel returns the human-readable current-state label for this
// stage, kind-specific where the vocabulary differs.
func (s Stage) LocationLabel(kind Kind) string {
	switch s {
	case StageConfirmed:
		return "order confirmed"
	case StagePrepared:
		if kind == Transport {
			return "vehicle arranged"
		}
		return "preparing"
	case StageEnRoute:
		return "en route"
	case StageDelivered:
		return "delivered"
	default:
		return ""
	}
}

// EstimatedTimeLabel returns the new estimated-time label this stage sets,
// or the empty string when the stage leaves the label unchanged.
func (s Stage) EstimatedTimeLabel(kind Kind) string {
	switch s {
	case StageEnRoute:
		if kind == Transport {
			return "5-10 minutes"
		}
		return "10-15 minutes"
	case StageDelivered:
		return "done"
	default:
		return ""
	}
}

// StagesDueAsOf returns, in increasing offset order, every stage whose
// offset from createdAt has elapsed at now. It is a pure function of
// wall-clock time: fresh scheduling and resume after a restart both reduce
// to calling it and scheduling timers only for the stages it excludes.
func StagesDueAsOf(createdAt, now time.Time) []Stage {
	elapsed := now.Sub(createdAt)
	due := make([]Stage, 0, len(Stages()))
	for _, stage := range Stages() {
		if elapsed >= stage.Offset() {
			due = append(due, stage)
		}
	}
	return due
}
