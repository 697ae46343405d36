package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// Kind distinguishes the two lookup types.
type Kind string

const (
	KindRisk    Kind = "risk"
	KindHolders Kind = "holders"
)

// Snapshot is one recorded lookup.
type Snapshot struct {
	ID        int64
	Address   string
	Kind      Kind
	RiskScore decimal.NullDecimal
	Rugged    bool
	TopTotal  decimal.NullDecimal
	Report    string
	CreatedAt time.Time
}

// RecordSnapshot inserts s and returns its id. A zero CreatedAt means now.
func (db *DB) RecordSnapshot(ctx context.Context, s Snapshot) (int64, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO snapshots (address, kind, risk_score, rugged, top_total, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Address, string(s.Kind), s.RiskScore, s.Rugged, s.TopTotal, s.Report, s.CreatedAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecordToken implements schema.SnapshotRecorder.
func (db *DB) RecordToken(ctx context.Context, s *schema.TokenSnapshot, text string) error {
	_, err := db.RecordSnapshot(ctx, TokenSnapshotRow(s, text))
	return err
}

// RecordHolders implements schema.SnapshotRecorder.
func (db *DB) RecordHolders(ctx context.Context, r *schema.HolderReport, text string) error {
	_, err := db.RecordSnapshot(ctx, HolderReportRow(r, text))
	return err
}

// TokenSnapshotRow converts a token snapshot into a history row.
func TokenSnapshotRow(s *schema.TokenSnapshot, text string) Snapshot {
	return Snapshot{
		Address:   s.Address,
		Kind:      KindRisk,
		RiskScore: s.RiskScore,
		Rugged:    s.Rugged,
		Report:    text,
	}
}

// HolderReportRow converts a holder report into a history row.
func HolderReportRow(r *schema.HolderReport, text string) Snapshot {
	return Snapshot{
		Address:  r.Address,
		Kind:     KindHolders,
		TopTotal: decimal.NewNullDecimal(r.TopTotal),
		Report:   text,
	}
}

const snapshotColumns = `id, address, kind, risk_score, rugged, top_total, report, created_at`

func scanSnapshot(row interface{ Scan(...any) error }) (*Snapshot, error) {
	var (
		s       Snapshot
		kind    string
		created int64
	)
	if err := row.Scan(&s.ID, &s.Address, &kind, &s.RiskScore, &s.Rugged, &s.TopTotal, &s.Report, &created); err != nil {
		return nil, err
	}
	s.Kind = Kind(kind)
	s.CreatedAt = time.UnixMilli(created)
	return &s, nil
}

// LatestSnapshot returns the newest snapshot of kind for address, or nil.
func (db *DB) LatestSnapshot(ctx context.Context, address string, kind Kind) (*Snapshot, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots WHERE address = ? AND kind = ? ORDER BY id DESC LIMIT 1`,
		address, string(kind))
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListSnapshots returns up to limit snapshots, newest first. An empty address
// lists every token.
func (db *DB) ListSnapshots(ctx context.Context, address string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	args := []any{}
	if address != "" {
		query += ` WHERE address = ?`
		args = append(args, address)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

var _ schema.SnapshotRecorder = (*DB)(nil)
