package expert

import (
	apperrors "github.com/agbru/expertpanel/internal/errors"
)

// Descriptor names a responder persona and carries its behavioral
// instructions. It is an immutable value: once constructed it is never
// modified, and the orchestration layer only ever reads it.
//
// Duplicate names within a panel are permitted; every result carries its own
// name field, so callers that need uniqueness must enforce it before running
// a batch.
type Descriptor struct {
	// Name identifies the responder (e.g., "Physics Expert").
	Name string `yaml:"name"`
	// Instructions is the opaque persona directive sent as system-level
	// guidance with every query.
	Instructions string `yaml:"instructions"`
}

// Validate checks the descriptor invariants: both the name and the
// instructions must be non-empty.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return apperrors.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if d.Instructions == "" {
		return apperrors.ValidationError{Field: "instructions", Message: "must not be empty"}
	}
	return nil
}

// DefaultPanel returns the built-in two-expert reference panel used when no
// panel file is configured.
func DefaultPanel() []Descriptor {
	return []Descriptor{
		{
			Name: "Physics Expert",
			Instructions: "You are a physicist. Answer the question from the " +
				"standpoint of physics: define quantities precisely, reference " +
				"the relevant laws, and prefer SI units.",
		},
		{
			Name: "Chemistry Expert",
			Instructions: "You are a chemist. Answer the question from the " +
				"standpoint of chemistry: focus on molecular behavior, " +
				"reactions, and laboratory practice.",
		},
	}
}
