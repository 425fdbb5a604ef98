package order

import "time"

// StepCount is the fixed number of progression steps every order carries.
// Positions are semantically fixed: placed, confirmed, prepared/arranged,
// en route, delivered.
const StepCount = 5

// Step is one of the five fixed progression steps of an order.
// A step completes exactly once and never resets; completion records the
// time and the location label current at that moment.
type Step struct {
	title       string
	completed   bool
	completedAt *time.Time
	location    string
}

// newStep creates an incomplete step with the given title.
func newStep(title string) Step {
	return Step{title: title}
}

// RestoreStep reconstructs a step from persisted state.
// Used by storage adapters when rehydrating an order.
func RestoreStep(title string, completed bool, completedAt *time.Time, location string) Step {
	return Step{
		title:       title,
		completed:   completed,
		completedAt: completedAt,
		location:    location,
	}
}

// Title returns the label for this step.
func (s Step) Title() string {
	return s.title
}

// IsCompleted reports whether the step has been completed.
func (s Step) IsCompleted() bool {
	return s.completed
}

// CompletedAt returns the completion timestamp, or nil for an incomplete step.
func (s Step) CompletedAt() *time.Time {
	return s.completedAt
}

// Location returns the location label recorded at completion.
func (s Step) Location() string {
	return s.location
}

// complete marks the step done at the given time and location.
// Completing an already-completed step is a no-op: the first completion wins.
func (s *Step) complete(at time.Time, location string) {
	if s.completed {
		return
	}
	s.completed = true
	completedAt := at
	s.completedAt = &completedAt
	s.location = location
}

// stepTitles returns the fixed step titles for the given kind.
func stepTitles(kind Kind) [StepCount]string {
	if kind == Transport {
		return [StepCount]string{
			"Order placed",
			"Order confirmed",
			"Vehicle arranged",
			"En route",
			"Delivered",
		}
	}
	return [StepCount]string{
		"Order placed",
		"Order confirmed",
		"Preparing",
		"En route",
		"Delivered",
	}
}
