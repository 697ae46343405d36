package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tokenguard/tokenguard/internal/schema"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshots_RecordAndLatest(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if s, err := db.LatestSnapshot(ctx, "mint", KindRisk); err != nil || s != nil {
		t.Fatalf("expected no snapshot, got %+v, %v", s, err)
	}

	snap := &schema.TokenSnapshot{Address: "mint", RiskScore: decimal.NewNullDecimal(decimal.NewFromInt(3))}
	if err := db.RecordToken(ctx, snap, "first"); err != nil {
		t.Fatal(err)
	}
	snap.RiskScore = decimal.NewNullDecimal(decimal.NewFromInt(7))
	snap.Rugged = true
	if err := db.RecordToken(ctx, snap, "second"); err != nil {
		t.Fatal(err)
	}

	got, err := db.LatestSnapshot(ctx, "mint", KindRisk)
	if err != nil {
		t.Fatal(err)
	}
	if got.Report != "second" || !got.Rugged {
		t.Errorf("unexpected latest snapshot %+v", got)
	}
	if !got.RiskScore.Valid || !got.RiskScore.Decimal.Equal(decimal.NewFromInt(7)) {
		t.Errorf("unexpected risk score %v", got.RiskScore)
	}
	if got.TopTotal.Valid {
		t.Error("risk snapshot must not carry a top total")
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSnapshots_HoldersKindIsSeparate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	report := &schema.HolderReport{Address: "mint", TopTotal: decimal.RequireFromString("17.25")}
	if err := db.RecordHolders(ctx, report, "holders"); err != nil {
		t.Fatal(err)
	}
	if s, _ := db.LatestSnapshot(ctx, "mint", KindRisk); s != nil {
		t.Errorf("expected no risk snapshot, got %+v", s)
	}
	s, err := db.LatestSnapshot(ctx, "mint", KindHolders)
	if err != nil {
		t.Fatal(err)
	}
	if s.TopTotal.Decimal.String() != "17.25" {
		t.Errorf("unexpected top total %s", s.TopTotal.Decimal)
	}
}

func TestSnapshots_List(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, addr := range []string{"a", "b", "a", "a"} {
		if _, err := db.RecordSnapshot(ctx, Snapshot{Address: addr, Kind: KindRisk, Report: addr}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.ListSnapshots(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 snapshots, got %d", len(all))
	}
	if all[0].ID < all[1].ID {
		t.Error("expected newest first")
	}

	onlyA, err := db.ListSnapshots(ctx, "a", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 2 {
		t.Errorf("expected limit of 2, got %d", len(onlyA))
	}
	for _, s := range onlyA {
		if s.Address != "a" {
			t.Errorf("unexpected address %q", s.Address)
		}
	}
}

func TestWatchlist(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if err := db.AddWatch(ctx, "mint1", "first"); err != nil {
		t.Fatal(err)
	}
	if err := db.AddWatch(ctx, "mint2", ""); err != nil {
		t.Fatal(err)
	}
	if err := db.AddWatch(ctx, "mint1", "renamed"); err != nil {
		t.Fatal(err)
	}

	ws, err := db.ListWatches(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ws) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ws))
	}
	labels := map[string]string{}
	for _, w := range ws {
		labels[w.Address] = w.Label
	}
	if labels["mint1"] != "renamed" {
		t.Errorf("expected label update, got %q", labels["mint1"])
	}

	removed, err := db.RemoveWatch(ctx, "mint1")
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}
	removed, err = db.RemoveWatch(ctx, "mint1")
	if err != nil || removed {
		t.Fatalf("expected no-op removal, got %v, %v", removed, err)
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := db.AddWatch(context.Background(), "x", ""); err != nil {
		t.Fatal(err)
	}
}
