package order

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Kind represents the order category. It determines the stage vocabulary:
// a Delivery order is "preparing" while a Transport order has its
// "vehicle arranged".
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// Delivery is an order fulfilled by courier delivery.
	Delivery

	// Transport is an order fulfilled by arranging a transport vehicle.
	Transport
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		Delivery:    "Delivery",
		Transport:   "Transport",
	}
}

// Validate checks if the Kind value is valid.
// Valid kinds are Delivery and Transport; KindUnknown (0) is invalid.
func (k Kind) Validate() error {
	if k != Delivery && k != Transport {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// initialEstimate returns the estimated-time label a freshly placed order
// of this kind starts with.
func (k Kind) initialEstimate() string {
	if k == Transport {
		return "20-30 minutes"
	}
	return "35-45 minutes"
}
