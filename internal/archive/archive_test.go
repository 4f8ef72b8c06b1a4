package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kitchend/internal/kitchen"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleRun(startedAt time.Time) SaveRunParams {
	return SaveRunParams{
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(10 * time.Second),
		Rate:       2,
		OrderCount: 3,
		Placed:     3,
		PickedUp:   2,
		Missed:     1,
		Discarded:  1,
		Actions: []kitchen.Action{
			{Timestamp: startedAt, OrderID: "order_001_1000", Type: kitchen.ActionPlace, Target: kitchen.LocCooler, Details: "Stored order_001_1000 at ideal temperature"},
			{Timestamp: startedAt.Add(time.Second), OrderID: "order_001_1000", Type: kitchen.ActionPickup, Target: kitchen.LocCooler, Details: "Picked up order_001_1000"},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	started := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	id, err := a.SaveRun(ctx, sampleRun(started))
	if err != nil {
		t.Fatalf("save run: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty run id")
	}

	got, err := a.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Placed != 3 || got.PickedUp != 2 || got.Missed != 1 || got.Discarded != 1 {
		t.Errorf("counters = %+v", got)
	}
	if !got.StartedAt.Equal(started.Truncate(time.Second)) {
		t.Errorf("started_at = %v, want %v", got.StartedAt, started.Truncate(time.Second))
	}

	if len(got.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(got.Actions))
	}
	first := got.Actions[0]
	if first.Type != kitchen.ActionPlace || first.OrderID != "order_001_1000" || first.Target != kitchen.LocCooler {
		t.Errorf("first action = %+v", first)
	}
	if !first.Timestamp.Equal(started) {
		t.Errorf("action timestamp = %v, want %v", first.Timestamp, started)
	}
	if first.Details != "Stored order_001_1000 at ideal temperature" {
		t.Errorf("details = %q", first.Details)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := a.SaveRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Hour)))
		if err != nil {
			t.Fatalf("save run %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	runs, err := a.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("order = %s, %s; want newest first", runs[0].ID, runs[1].ID)
	}
	if len(runs[0].Actions) != 0 {
		t.Errorf("list should not load ledgers, got %d actions", len(runs[0].Actions))
	}
}

func TestListRunsDefaultLimit(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		if _, err := a.SaveRun(ctx, sampleRun(base.Add(time.Duration(i) * time.Minute))); err != nil {
			t.Fatalf("save run %d: %v", i, err)
		}
	}

	runs, err := a.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("expected default limit of 20, got %d", len(runs))
	}
}

func TestGetRunUnknown(t *testing.T) {
	a := newTestArchive(t)

	_, err := a.GetRun(context.Background(), "01JXXXXXXXXXXXXXXXXXXXXXXX")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestSaveRunWithoutActions(t *testing.T) {
	ctx := context.Background()
	a := newTestArchive(t)

	p := sampleRun(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	p.Actions = nil
	id, err := a.SaveRun(ctx, p)
	if err != nil {
		t.Fatalf("save run: %v", err)
	}

	got, err := a.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if len(got.Actions) != 0 {
		t.Errorf("expected no actions, got %d", len(got.Actions))
	}
}

func TestArchivePathCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "runs.db")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	a.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
