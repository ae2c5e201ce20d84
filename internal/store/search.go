package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/teamventure/itinmd/internal/model"
)

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchParams holds parameters for searching plans.
type SearchParams struct {
	Query string
	Limit int
}

// SearchResult wraps a plan with the first Day section that matched.
type SearchResult struct {
	model.Plan
	MatchChunk *model.Chunk `json:"match_chunk,omitempty"`
}

// Search finds latest plan versions whose id, Markdown or Day sections contain the query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	like := "%" + likeEscaper.Replace(p.Query) + "%"

	query := `
		SELECT DISTINCT p.id, p.plan_id, p.markdown, p.itinerary, p.version, p.supersedes,
		       p.created_at, p.deleted_at, p.days, p.items
		FROM plans p
		INNER JOIN (
			SELECT plan_id, MAX(version) AS max_ver
			FROM plans WHERE deleted_at IS NULL
			GROUP BY plan_id
		) latest ON p.plan_id = latest.plan_id AND p.version = latest.max_ver
		LEFT JOIN chunks c ON c.plan_row_id = p.id
		WHERE p.deleted_at IS NULL AND (p.markdown LIKE ? ESCAPE '\' OR p.plan_id LIKE ? ESCAPE '\' OR c.text LIKE ? ESCAPE '\')
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`

	plans, err := s.queryPlans(ctx, query, like, like, like, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(plans))
	for _, pl := range plans {
		c, err := s.matchChunk(ctx, pl.ID, like)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{Plan: pl, MatchChunk: c})
	}
	return results, nil
}

// matchChunk returns the first Day section of a plan row matching the pattern, or nil.
func (s *SQLiteStore) matchChunk(ctx context.Context, rowID, like string) (*model.Chunk, error) {
	var c model.Chunk
	var start, end sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, plan_row_id, seq, day, heading, text, start_line, end_line
		 FROM chunks WHERE plan_row_id = ? AND text LIKE ? ESCAPE '\'
		 ORDER BY seq LIMIT 1`, rowID, like).
		Scan(&c.ID, &c.PlanRowID, &c.Seq, &c.Day, &c.Heading, &c.Text, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.StartLine = int(start.Int64)
	c.EndLine = int(end.Int64)
	return &c, nil
}
