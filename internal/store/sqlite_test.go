package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	docV1 = "## Day 1（2024-05-01）\n- 09:00 - 10:00 ｜ 早餐 ｜ 酒店\n- 10:30 - | 西湖 | 断桥 |"
	docV2 = "## Day 1\n- 09:00 - 10:00 | 早餐 | 酒店 |\n## Day 2\n- 08:00 - | 灵隐寺 | | 早点出发"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCommit(t *testing.T, s *SQLiteStore, planID, md string) {
	t.Helper()
	if _, err := s.Commit(context.Background(), CommitParams{PlanID: planID, Markdown: md}); err != nil {
		t.Fatalf("commit %s: %v", planID, err)
	}
}

func TestCommitAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	plan, err := s.Commit(ctx, CommitParams{PlanID: "hz-trip", Markdown: docV1})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if plan.Version != 1 {
		t.Errorf("expected version 1, got %d", plan.Version)
	}
	if plan.ID == "" {
		t.Error("expected non-empty ID")
	}
	if plan.Days != 1 || plan.Items != 2 {
		t.Errorf("expected 1 day / 2 items, got %d / %d", plan.Days, plan.Items)
	}
	if plan.ChunkCount != 1 {
		t.Errorf("expected 1 chunk, got %d", plan.ChunkCount)
	}

	want := "# 行程安排\n> 版本: v1\n\n## Day 1（2024-05-01）\n- 09:00 - 10:00 | 早餐 | 酒店 | \n- 10:30 - | 西湖 | 断桥 | \n"
	if plan.Markdown != want {
		t.Errorf("expected canonical markdown %q, got %q", want, plan.Markdown)
	}

	got, err := s.Get(ctx, GetParams{PlanID: "hz-trip"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Markdown != want {
		t.Errorf("stored markdown differs: %q", got[0].Markdown)
	}
	if got[0].Itinerary.Days[0].Date != "2024-05-01" || got[0].Itinerary.Days[0].Items[1].Location != "断桥" {
		t.Errorf("itinerary not persisted correctly: %+v", got[0].Itinerary)
	}
	if !got[0].CreatedAt.Equal(plan.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", got[0].CreatedAt, plan.CreatedAt)
	}
}

func TestCommitRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Commit(context.Background(), CommitParams{PlanID: "p", Markdown: "## Day 1\n随便写一句"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("expected 2 validation errors, got %v", ve.Errors)
	}
	if !strings.Contains(err.Error(), "第 2 行") || !strings.Contains(err.Error(), "and 1 more") {
		t.Errorf("unexpected message: %v", err)
	}

	if _, err := s.Get(context.Background(), GetParams{PlanID: "p"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected commit must not be stored, got %v", err)
	}
}

func TestCommitRequiresPlanID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Commit(context.Background(), CommitParams{Markdown: docV1}); err == nil {
		t.Error("expected error for empty plan id")
	}
}

func TestVersioning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	v2, err := s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV2, BaseVersion: 1})
	if err != nil {
		t.Fatalf("commit v2: %v", err)
	}
	if v2.Version != 2 {
		t.Errorf("expected version 2, got %d", v2.Version)
	}
	if v2.Supersedes == "" {
		t.Error("expected supersedes to be set")
	}
	if !strings.Contains(v2.Markdown, "> 版本: v2") {
		t.Errorf("expected version line v2 in %q", v2.Markdown)
	}

	got, _ := s.Get(ctx, GetParams{PlanID: "p"})
	if got[0].Version != 2 || got[0].Days != 2 {
		t.Errorf("expected latest v2 with 2 days, got v%d with %d days", got[0].Version, got[0].Days)
	}

	hist, _ := s.Get(ctx, GetParams{PlanID: "p", History: true})
	if len(hist) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(hist))
	}
	if hist[0].Version != 2 || hist[1].Version != 1 {
		t.Errorf("expected newest first, got v%d, v%d", hist[0].Version, hist[1].Version)
	}
	if hist[0].Supersedes != hist[1].ID {
		t.Errorf("v2 should supersede v1 row %s, got %s", hist[1].ID, hist[0].Supersedes)
	}

	v1, _ := s.Get(ctx, GetParams{PlanID: "p", Version: 1})
	if v1[0].Items != 2 || v1[0].Itinerary.Days[0].Items[1].Activity != "西湖" {
		t.Errorf("unexpected v1: %+v", v1[0])
	}

	if _, err := s.Get(ctx, GetParams{PlanID: "p", Version: 9}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing version, got %v", err)
	}
}

func TestCommitConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	mustCommit(t, s, "p", docV2)

	_, err := s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV1, BaseVersion: 1})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConflictError, got %T", err)
	}
	if ce.LatestVersion != 2 || ce.BaseVersion != 1 {
		t.Errorf("unexpected conflict: %+v", ce)
	}

	// Base version of a plan that does not exist yet
	if _, err := s.Commit(ctx, CommitParams{PlanID: "new", Markdown: docV1, BaseVersion: 3}); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("expected conflict for unknown plan with base version, got %v", err)
	}

	// Zero base version skips the check
	p, err := s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV1})
	if err != nil {
		t.Fatalf("commit without base: %v", err)
	}
	if p.Version != 3 {
		t.Errorf("expected version 3, got %d", p.Version)
	}
}

func TestCommitClearsDraft(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.SaveDraft(ctx, draft("p", "## Day 1\n还没写完", 0)); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	mustCommit(t, s, "p", docV1)

	if _, err := s.GetDraft(ctx, "p"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected draft to be cleared, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "a", docV1)
	mustCommit(t, s, "b", docV1)
	mustCommit(t, s, "a", docV2)

	all, _ := s.List(ctx, ListParams{})
	if len(all) != 2 {
		t.Fatalf("expected 2 (latest only), got %d", len(all))
	}
	if all[0].PlanID != "a" || all[0].Version != 2 {
		t.Errorf("expected a@v2 first, got %s@v%d", all[0].PlanID, all[0].Version)
	}

	limited, _ := s.List(ctx, ListParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 with limit, got %d", len(limited))
	}
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	mustCommit(t, s, "p", docV2)
	if err := s.Rm(ctx, RmParams{PlanID: "p"}); err != nil {
		t.Fatalf("rm: %v", err)
	}

	got, err := s.Get(ctx, GetParams{PlanID: "p"})
	if err != nil {
		t.Fatalf("get after rm: %v", err)
	}
	if got[0].Version != 1 {
		t.Errorf("expected v1 to become latest, got v%d", got[0].Version)
	}

	// Numbering continues past the deleted version
	p, err := s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV2, BaseVersion: 1})
	if err != nil {
		t.Fatalf("commit after rm: %v", err)
	}
	if p.Version != 3 {
		t.Errorf("expected version 3, got %d", p.Version)
	}
}

func TestHardDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	if err := s.Rm(ctx, RmParams{PlanID: "p", Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}

	if _, err := s.Get(ctx, GetParams{PlanID: "p"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after hard delete, got %v", err)
	}

	var chunks int
	s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&chunks)
	if chunks != 0 {
		t.Errorf("expected chunks to be removed, got %d", chunks)
	}
}

func TestHardDeleteKeepsVersionNumbers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	mustCommit(t, s, "p", docV2)
	if err := s.Rm(ctx, RmParams{PlanID: "p", Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}

	p, err := s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV2, BaseVersion: 1})
	if err != nil {
		t.Fatalf("commit after hard rm: %v", err)
	}
	if p.Version != 3 {
		t.Errorf("expected version 3 after hard-deleting v2, got %d", p.Version)
	}

	// Purging every version resets the counter.
	if err := s.Rm(ctx, RmParams{PlanID: "p", AllVersions: true, Hard: true}); err != nil {
		t.Fatalf("rm all hard: %v", err)
	}
	p, err = s.Commit(ctx, CommitParams{PlanID: "p", Markdown: docV1})
	if err != nil {
		t.Fatalf("commit after purge: %v", err)
	}
	if p.Version != 1 {
		t.Errorf("expected version 1 after purge, got %d", p.Version)
	}
}

func TestDeleteAllVersions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCommit(t, s, "p", docV1)
	mustCommit(t, s, "p", docV2)

	if err := s.Rm(ctx, RmParams{PlanID: "p", AllVersions: true}); err != nil {
		t.Fatalf("rm all: %v", err)
	}
	if _, err := s.Get(ctx, GetParams{PlanID: "p", History: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after deleting all versions, got %v", err)
	}

	if err := s.Rm(ctx, RmParams{PlanID: "p", AllVersions: true, Hard: true}); err != nil {
		t.Fatalf("hard rm of soft-deleted rows: %v", err)
	}
}

func TestRmMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range []RmParams{
		{PlanID: "nope"},
		{PlanID: "nope", Hard: true},
		{PlanID: "nope", AllVersions: true},
		{PlanID: "nope", AllVersions: true, Hard: true},
	} {
		if err := s.Rm(ctx, p); !errors.Is(err, ErrNotFound) {
			t.Errorf("Rm(%+v): expected ErrNotFound, got %v", p, err)
		}
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
