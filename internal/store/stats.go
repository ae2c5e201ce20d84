package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string      `json:"db_path"`
	DBSizeBytes    int64       `json:"db_size_bytes"`
	TotalPlans     int         `json:"total_plans"`
	TotalVersions  int         `json:"total_versions"`
	ActiveVersions int         `json:"active_versions"`
	TotalChunks    int         `json:"total_chunks"`
	Drafts         int         `json:"drafts"`
	Plans          []PlanStats `json:"plans"`
}

// PlanStats holds per-plan counts.
type PlanStats struct {
	PlanID   string `json:"plan_id"`
	Versions int    `json:"versions"`
	Latest   int    `json:"latest"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Plans: []PlanStats{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(DISTINCT plan_id) FROM plans WHERE deleted_at IS NULL`, &st.TotalPlans},
		{`SELECT COUNT(*) FROM plans`, &st.TotalVersions},
		{`SELECT COUNT(*) FROM plans WHERE deleted_at IS NULL`, &st.ActiveVersions},
		{`SELECT COUNT(*) FROM chunks`, &st.TotalChunks},
		{`SELECT COUNT(*) FROM drafts`, &st.Drafts},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, err
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT plan_id, COUNT(*) AS cnt, MAX(version) AS latest
		FROM plans WHERE deleted_at IS NULL
		GROUP BY plan_id ORDER BY cnt DESC, plan_id`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps PlanStats
		if err := rows.Scan(&ps.PlanID, &ps.Versions, &ps.Latest); err != nil {
			return st, err
		}
		st.Plans = append(st.Plans, ps)
	}

	return st, rows.Err()
}
