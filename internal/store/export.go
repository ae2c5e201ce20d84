package store

import (
	"context"

	"github.com/teamventure/itinmd/internal/model"
)

// ExportAll returns all non-deleted plan versions, optionally filtered by plan id.
func (s *SQLiteStore) ExportAll(ctx context.Context, planID string) ([]model.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE deleted_at IS NULL`
	var args []any
	if planID != "" {
		query += ` AND plan_id = ?`
		args = append(args, planID)
	}
	query += ` ORDER BY plan_id, version`

	return s.queryPlans(ctx, query, args...)
}

// Import re-commits exported versions in order. Version numbers are reassigned, so importing
// into a store that already holds a plan appends to its history.
func (s *SQLiteStore) Import(ctx context.Context, plans []model.Plan) (int, error) {
	imported := 0
	for _, p := range plans {
		if _, err := s.Commit(ctx, CommitParams{PlanID: p.PlanID, Markdown: p.Markdown}); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
