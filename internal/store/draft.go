package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/model"
)

// SaveDraft stores work-in-progress text for a plan, replacing any earlier draft.
// Drafts are not validated.
func (s *SQLiteStore) SaveDraft(ctx context.Context, d model.Draft) (*model.Draft, error) {
	if d.PlanID == "" {
		return nil, errors.New("plan id is required")
	}
	d.SavedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (plan_id, markdown, base_version, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(plan_id) DO UPDATE SET
		   markdown = excluded.markdown,
		   base_version = excluded.base_version,
		   saved_at = excluded.saved_at`,
		d.PlanID, d.Markdown, d.BaseVersion, d.SavedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	s.log.Debug("draft saved", zap.String("plan_id", d.PlanID), zap.Int("base_version", d.BaseVersion))
	return &d, nil
}

// GetDraft returns the saved draft of a plan.
func (s *SQLiteStore) GetDraft(ctx context.Context, planID string) (*model.Draft, error) {
	d := model.Draft{PlanID: planID}
	var savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT markdown, base_version, saved_at FROM drafts WHERE plan_id = ?`, planID).
		Scan(&d.Markdown, &d.BaseVersion, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("draft", planID)
	}
	if err != nil {
		return nil, err
	}
	d.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return &d, nil
}

// ClearDraft removes a plan's draft. Clearing a missing draft is not an error.
func (s *SQLiteStore) ClearDraft(ctx context.Context, planID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE plan_id = ?`, planID)
	return err
}
