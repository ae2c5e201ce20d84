package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/teamventure/itinmd/internal/chunker"
	"github.com/teamventure/itinmd/internal/itinerary"
	"github.com/teamventure/itinmd/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for commits, conflicts and deletes.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		log:     zap.NewNop(),
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		plan_id     TEXT NOT NULL,
		markdown    TEXT NOT NULL,
		itinerary   TEXT NOT NULL,
		version     INTEGER NOT NULL,
		supersedes  TEXT,
		created_at  TEXT NOT NULL,
		deleted_at  TEXT,
		days        INTEGER NOT NULL DEFAULT 0,
		items       INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_plans_plan_version ON plans(plan_id, version);
	CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_plans_deleted ON plans(deleted_at);

	CREATE TABLE IF NOT EXISTS chunks (
		id          TEXT PRIMARY KEY,
		plan_row_id TEXT NOT NULL REFERENCES plans(id),
		seq         INTEGER NOT NULL,
		day         INTEGER NOT NULL,
		heading     TEXT NOT NULL,
		text        TEXT NOT NULL,
		start_line  INTEGER,
		end_line    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_plan ON chunks(plan_row_id);

	CREATE TABLE IF NOT EXISTS plan_versions (
		plan_id      TEXT PRIMARY KEY,
		last_version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS drafts (
		plan_id      TEXT PRIMARY KEY,
		markdown     TEXT NOT NULL,
		base_version INTEGER NOT NULL DEFAULT 0,
		saved_at     TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Commit validates the Markdown and stores it as the next version of the plan. The stored
// text is the canonical serialization, so cosmetic differences in the input do not survive.
func (s *SQLiteStore) Commit(ctx context.Context, p CommitParams) (*model.Plan, error) {
	if p.PlanID == "" {
		return nil, errors.New("plan id is required")
	}

	check := itinerary.Validate(p.Markdown)
	if !check.Valid {
		s.log.Debug("commit rejected", zap.String("plan_id", p.PlanID), zap.Strings("errors", check.Errors))
		return nil, &ValidationError{Errors: check.Errors}
	}

	now := time.Now().UTC()
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Latest active version is the CAS target; numbering continues past deleted rows.
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM plans
		 WHERE plan_id = ? AND deleted_at IS NULL
		 ORDER BY version DESC LIMIT 1`, p.PlanID).Scan(&prevID, &prevVersion)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest version: %w", err)
	}

	if p.BaseVersion > 0 && p.BaseVersion != prevVersion {
		s.log.Info("commit conflict",
			zap.String("plan_id", p.PlanID),
			zap.Int("base_version", p.BaseVersion),
			zap.Int("latest_version", prevVersion))
		return nil, &ConflictError{PlanID: p.PlanID, BaseVersion: p.BaseVersion, LatestVersion: prevVersion}
	}

	// The counter outlives hard-deleted rows; MAX(version) covers databases created before it.
	var maxVersion int
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(
			COALESCE((SELECT MAX(version) FROM plans WHERE plan_id = ?), 0),
			COALESCE((SELECT last_version FROM plan_versions WHERE plan_id = ?), 0))`,
		p.PlanID, p.PlanID).Scan(&maxVersion); err != nil {
		return nil, fmt.Errorf("max version: %w", err)
	}
	version := maxVersion + 1

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO plan_versions (plan_id, last_version) VALUES (?, ?)
		 ON CONFLICT(plan_id) DO UPDATE SET last_version = excluded.last_version`,
		p.PlanID, version); err != nil {
		return nil, fmt.Errorf("bump version: %w", err)
	}

	var supersedes *string
	if prevID != "" {
		supersedes = &prevID
	}

	it := check.Itinerary
	markdown := itinerary.Serialize(it, version)
	itJSON, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	stats := it.Stats()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, plan_id, markdown, itinerary, version, supersedes, created_at, days, items)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.PlanID, markdown, string(itJSON), version, supersedes,
		now.Format(time.RFC3339), stats.Days, stats.Items)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	// Chunk the canonical text per Day for search
	chunks := chunker.Chunk(markdown, chunker.DefaultOptions())
	for i, c := range chunks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chunks (id, plan_row_id, seq, day, heading, text, start_line, end_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), id, i, c.Day, c.Heading, c.Text, c.StartLine, c.EndLine)
		if err != nil {
			return nil, fmt.Errorf("insert chunk: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM drafts WHERE plan_id = ?`, p.PlanID); err != nil {
		return nil, fmt.Errorf("clear draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("plan committed",
		zap.String("plan_id", p.PlanID),
		zap.Int("version", version),
		zap.Int("days", stats.Days),
		zap.Int("items", stats.Items))

	plan := &model.Plan{
		ID:         id,
		PlanID:     p.PlanID,
		Markdown:   markdown,
		Itinerary:  it,
		Version:    version,
		CreatedAt:  now.Truncate(time.Second),
		Days:       stats.Days,
		Items:      stats.Items,
		ChunkCount: len(chunks),
	}
	if supersedes != nil {
		plan.Supersedes = *supersedes
	}
	return plan, nil
}

const planColumns = `id, plan_id, markdown, itinerary, version, supersedes, created_at, deleted_at, days, items`

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.Plan, error) {
	var query string
	var args []any

	if p.History {
		query = `SELECT ` + planColumns + `
				 FROM plans WHERE plan_id = ? AND deleted_at IS NULL
				 ORDER BY version DESC`
		args = []any{p.PlanID}
	} else if p.Version > 0 {
		query = `SELECT ` + planColumns + `
				 FROM plans WHERE plan_id = ? AND version = ? AND deleted_at IS NULL
				 LIMIT 1`
		args = []any{p.PlanID, p.Version}
	} else {
		query = `SELECT ` + planColumns + `
				 FROM plans WHERE plan_id = ? AND deleted_at IS NULL
				 ORDER BY version DESC LIMIT 1`
		args = []any{p.PlanID}
	}

	plans, err := s.queryPlans(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		if p.Version > 0 {
			return nil, notFound(fmt.Sprintf("plan v%d", p.Version), p.PlanID)
		}
		return nil, notFound("plan", p.PlanID)
	}
	return plans, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Plan, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	// Only the latest active version of each plan
	query := `
		SELECT p.id, p.plan_id, p.markdown, p.itinerary, p.version, p.supersedes,
		       p.created_at, p.deleted_at, p.days, p.items
		FROM plans p
		INNER JOIN (
			SELECT plan_id, MAX(version) AS max_ver
			FROM plans WHERE deleted_at IS NULL
			GROUP BY plan_id
		) latest ON p.plan_id = latest.plan_id AND p.version = latest.max_ver
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`

	return s.queryPlans(ctx, query, limit)
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	if p.Hard {
		if p.AllVersions {
			_, err := s.db.ExecContext(ctx,
				`DELETE FROM chunks WHERE plan_row_id IN (SELECT id FROM plans WHERE plan_id = ?)`, p.PlanID)
			if err != nil {
				return err
			}
			res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE plan_id = ?`, p.PlanID)
			if err != nil {
				return err
			}
			if err := s.logRemoved(res, p); err != nil {
				return err
			}
			// A purged plan starts over at v1.
			_, err = s.db.ExecContext(ctx, `DELETE FROM plan_versions WHERE plan_id = ?`, p.PlanID)
			return err
		}
		id, err := s.latestID(ctx, p.PlanID)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE plan_row_id = ?`, id); err != nil {
			return err
		}
		res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return s.logRemoved(res, p)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.AllVersions {
		res, err := s.db.ExecContext(ctx,
			`UPDATE plans SET deleted_at = ? WHERE plan_id = ? AND deleted_at IS NULL`, now, p.PlanID)
		if err != nil {
			return err
		}
		return s.logRemoved(res, p)
	}

	// Soft-delete latest version only
	id, err := s.latestID(ctx, p.PlanID)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE plans SET deleted_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return err
	}
	return s.logRemoved(res, p)
}

func (s *SQLiteStore) logRemoved(res sql.Result, p RmParams) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("plan", p.PlanID)
	}
	s.log.Info("plan removed",
		zap.String("plan_id", p.PlanID),
		zap.Int64("rows", n),
		zap.Bool("hard", p.Hard),
		zap.Bool("all_versions", p.AllVersions))
	return nil
}

// latestID finds the row id of the latest active version of a plan.
func (s *SQLiteStore) latestID(ctx context.Context, planID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM plans WHERE plan_id = ? AND deleted_at IS NULL
		 ORDER BY version DESC LIMIT 1`, planID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("plan", planID)
	}
	return id, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryPlans(ctx context.Context, query string, args ...any) ([]model.Plan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (model.Plan, error) {
	var p model.Plan
	var supersedes, deletedAt sql.NullString
	var createdAt, itJSON string

	err := row.Scan(
		&p.ID, &p.PlanID, &p.Markdown, &itJSON, &p.Version, &supersedes,
		&createdAt, &deletedAt, &p.Days, &p.Items,
	)
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal([]byte(itJSON), &p.Itinerary); err != nil {
		return p, fmt.Errorf("decode itinerary of %s: %w", p.ID, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if supersedes.Valid {
		p.Supersedes = supersedes.String
	}
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		p.DeletedAt = &t
	}

	return p, nil
}
