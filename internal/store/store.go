// Package store keeps committed itinerary versions and editor drafts in SQLite.
package store

import (
	"context"

	"github.com/teamventure/itinmd/internal/model"
)

// CommitParams holds parameters for committing a plan version.
type CommitParams struct {
	PlanID   string
	Markdown string
	// BaseVersion is the version the edit started from. Zero skips the conflict check.
	BaseVersion int
}

// GetParams holds parameters for retrieving a plan.
type GetParams struct {
	PlanID  string
	History bool
	Version int // 0 means latest
}

// ListParams holds parameters for listing plans.
type ListParams struct {
	Limit int
}

// RmParams holds parameters for deleting a plan.
type RmParams struct {
	PlanID      string
	AllVersions bool
	Hard        bool
}

// Store defines the plan storage interface.
type Store interface {
	// Commit validates and stores a new version of a plan. Returns the created version.
	Commit(ctx context.Context, p CommitParams) (*model.Plan, error)

	// Get retrieves a plan by id.
	// Returns a slice (single element normally, newest first with History=true).
	Get(ctx context.Context, p GetParams) ([]model.Plan, error)

	// List lists the latest version of every plan.
	List(ctx context.Context, p ListParams) ([]model.Plan, error)

	// Rm soft-deletes (or hard-deletes) a plan.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
