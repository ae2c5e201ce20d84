package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrValidation      = errors.New("invalid itinerary")
)

// ValidationError carries the validator messages for a rejected commit.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ErrValidation.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrValidation, e.Errors[0])
	}
	return fmt.Sprintf("%s: %s (and %d more)", ErrValidation, e.Errors[0], len(e.Errors)-1)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a commit whose base version is no longer the latest.
type ConflictError struct {
	PlanID        string
	BaseVersion   int
	LatestVersion int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: plan %q is at v%d, edit was based on v%d",
		ErrVersionConflict, e.PlanID, e.LatestVersion, e.BaseVersion)
}

func (e *ConflictError) Unwrap() error { return ErrVersionConflict }

func notFound(what, planID string) error {
	return fmt.Errorf("%s %q: %w", what, planID, ErrNotFound)
}
