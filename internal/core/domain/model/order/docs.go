// Package order provides domain entities and business logic for tracking the
// lifecycle of a single active order. It implements the Order aggregate root
// with its fixed five-step progression and coarse status state machine.
//
// The package includes:
//   - Order: The aggregate root holding identity, metadata, labels, and steps
//   - Status: The coarse lifecycle state: Pending -> Confirmed -> InProgress -> Completed
//   - Kind: The order category (Delivery or Transport) that selects the stage vocabulary
//   - Step: One of the five fixed progression steps with completion metadata
//   - Stage: The timed transition table measured from order creation
//
// Key business rules:
//   - Steps complete strictly in sequence and never un-complete
//   - Status and step completion mutate only together, through ApplyStage
//   - Status never regresses; Completed is terminal
//   - Which stages are due is a pure function of wall-clock time since creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
