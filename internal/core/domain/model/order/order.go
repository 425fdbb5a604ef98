package order

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrStageAlreadyApplied signals a monotonic no-op: the requested stage has
	// already been applied to this order. Duplicate timers firing after a
	// catch-up resume hit this guard instead of mutating state twice.
	ErrStageAlreadyApplied = errors.New("stage is already applied")

	// ErrOrderIsCompleted signals that the order reached its terminal status
	// and refuses any further stage application.
	ErrOrderIsCompleted = errors.New("order is already completed")
)

// Order represents the single active tracked order. It is the aggregate root
// that carries the order's identity, immutable metadata, the human-readable
// progress labels, and the fixed five-step progression.
//
// Order follows these invariants:
//   - Steps complete strictly in sequence: a completed step implies all
//     earlier steps are completed
//   - Steps never un-complete and status never regresses
//   - Status and step completion change only together, through ApplyStage
//   - Once status is Completed the order is terminal
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order, assigned at creation
	id kernel.UUID

	// kind selects the stage vocabulary (Delivery or Transport)
	kind Kind

	// serviceLabel is the free-text description of the ordered service
	serviceLabel string

	// status is the coarse lifecycle state, kept in lockstep with steps
	status Status

	// createdAt anchors every scheduled stage transition
	createdAt time.Time

	// estimatedTime is the human-readable remaining-time label
	estimatedTime string

	// currentLocation is the human-readable current-state label
	currentLocation string

	// destinationAddress, amount and paymentMethod are immutable metadata
	destinationAddress string
	amount             int64
	paymentMethod      string

	// steps is the fixed five-step progression
	steps []Step

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a freshly placed Order with validation. Step 0
// ("Order placed") is pre-completed at creation time and the status starts
// at Pending; every timed stage is still ahead.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - kind: Delivery or Transport
//   - serviceLabel: free-text service description (required)
//   - destinationAddress: delivery destination (required)
//   - paymentMethod: human-readable payment method label (required)
//   - amount: order total in minor currency units (must be positive)
//   - createdAt: creation timestamp, the anchor for all transitions
func NewOrder(
	id kernel.UUID,
	kind Kind,
	serviceLabel string,
	destinationAddress string,
	paymentMethod string,
	amount int64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setKind(kind),
		order.setServiceLabel(serviceLabel),
		order.setDestinationAddress(destinationAddress),
		order.setPaymentMethod(paymentMethod),
		order.setAmount(amount),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	titles := stepTitles(kind)
	order.steps = make([]Step, 0, StepCount)
	for _, title := range titles {
		order.steps = append(order.steps, newStep(title))
	}
	order.steps[0].complete(createdAt, placedLocationLabel)
	order.currentLocation = placedLocationLabel
	order.estimatedTime = kind.initialEstimate()

	return order, nil
}

// placedLocationLabel is the current-state label of a freshly placed order
// and of step 0.
const placedLocationLabel = "order placed"

// RestoreOrder reconstructs an Order from persisted state.
//
// Beyond field validation it enforces the sequential-completion invariant:
// a completed step after an incomplete one means the stored record is
// corrupt. Storage adapters treat any error from RestoreOrder as "no active
// order" rather than propagating it (fail-soft).
func RestoreOrder(
	id kernel.UUID,
	kind Kind,
	serviceLabel string,
	status Status,
	createdAt time.Time,
	estimatedTime string,
	currentLocation string,
	destinationAddress string,
	amount int64,
	paymentMethod string,
	steps []Step,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setKind(kind),
		order.setServiceLabel(serviceLabel),
		order.setDestinationAddress(destinationAddress),
		order.setPaymentMethod(paymentMethod),
		order.setAmount(amount),
		order.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = status
	order.estimatedTime = estimatedTime
	order.currentLocation = currentLocation

	if len(steps) != StepCount {
		return nil, errs.NewValueIsInvalidErrorWithCause("steps are invalid",
			fmt.Errorf("expected %d steps, got %d", StepCount, len(steps)))
	}

	seenIncomplete := false
	for i, step := range steps {
		if step.IsCompleted() && seenIncomplete {
			return nil, errs.NewValueIsInvalidErrorWithCause("steps are invalid",
				fmt.Errorf("step %d is completed after an incomplete step", i))
		}
		if !step.IsCompleted() {
			seenIncomplete = true
		}
	}
	order.steps = make([]Step, StepCount)
	copy(order.steps, steps)

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Kind returns the order category.
func (o *Order) Kind() Kind {
	return o.kind
}

// ServiceLabel returns the free-text service description.
func (o *Order) ServiceLabel() string {
	return o.serviceLabel
}

// Status returns the current coarse lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp anchoring all transitions.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedTime returns the human-readable remaining-time label.
func (o *Order) EstimatedTime() string {
	return o.estimatedTime
}

// CurrentLocation returns the human-readable current-state label.
func (o *Order) CurrentLocation() string {
	return o.currentLocation
}

// DestinationAddress returns the delivery destination.
func (o *Order) DestinationAddress() string {
	return o.destinationAddress
}

// Amount returns the order total in minor currency units.
func (o *Order) Amount() int64 {
	return o.amount
}

// PaymentMethod returns the payment method label.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Steps returns a copy of the five progression steps.
func (o *Order) Steps() []Step {
	steps := make([]Step, len(o.steps))
	copy(steps, o.steps)
	return steps
}

// IsCompleted reports whether the order reached its terminal status.
func (o *Order) IsCompleted() bool {
	return o.status.IsTerminal()
}

// StageApplied reports whether the given stage's step is already completed.
func (o *Order) StageApplied(stage Stage) bool {
	if err := stage.Validate(); err != nil {
		return false
	}
	return o.steps[stage.StepIndex()].IsCompleted()
}

// ApplyStage applies one timed transition: it completes the stage's step
// (and any earlier step still incomplete, so records written by external
// collaborators with no steps completed catch up cleanly), and sets the
// status, current-location label and estimated-time label in the same call.
// Status and steps therefore cannot drift apart.
//
// ApplyStage refuses to run when the order is terminal (ErrOrderIsCompleted)
// or when the stage was already applied (ErrStageAlreadyApplied). Both are
// no-op guards, not failures: a duplicate timer firing after a catch-up
// resume is expected and must leave the record untouched.
func (o *Order) ApplyStage(stage Stage, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := stage.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderIsCompleted
	}
	if o.StageApplied(stage) {
		return ErrStageAlreadyApplied
	}

	for i := 0; i <= stage.StepIndex(); i++ {
		o.steps[i].complete(at, o.stepLocationLabel(i))
	}

	if next := stage.Status(); next > o.status {
		o.status = next
	}
	o.currentLocation = stage.LocationLabel(o.kind)
	if eta := stage.EstimatedTimeLabel(o.kind); eta != "" {
		o.estimatedTime = eta
	}

	return nil
}

// stepLocationLabel returns the location label a step at the given index
// records on completion. Step 0 completes at placement; steps 1..4 map
// one-to-one onto stages.
func (o *Order) stepLocationLabel(index int) string {
	if index == 0 {
		return placedLocationLabel
	}
	return Stage(index).LocationLabel(o.kind)
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setKind validates and sets the order category.
func (o *Order) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

// setServiceLabel validates and sets the service description.
func (o *Order) setServiceLabel(serviceLabel string) error {
	if serviceLabel == "" {
		return errs.NewValueIsRequiredError("serviceLabel")
	}
	o.serviceLabel = serviceLabel
	return nil
}

// setDestinationAddress validates and sets the destination.
func (o *Order) setDestinationAddress(destinationAddress string) error {
	if destinationAddress == "" {
		return errs.NewValueIsRequiredError("destinationAddress")
	}
	o.destinationAddress = destinationAddress
	return nil
}

// setPaymentMethod validates and sets the payment method label.
func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = paymentMethod
	return nil
}

// setAmount validates and sets the order total.
// Amount must be positive (greater than 0 minor units).
func (o *Order) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is not greater than 0", amount))
	}
	o.amount = amount
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
