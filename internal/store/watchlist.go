package store

import (
	"context"
	"time"
)

// WatchEntry is one token on the watchlist.
type WatchEntry struct {
	Address string
	Label   string
	AddedAt time.Time
}

// AddWatch adds address to the watchlist or updates its label.
func (db *DB) AddWatch(ctx context.Context, address, label string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO watchlist (address, label, added_at) VALUES (?, ?, ?)
		 ON CONFLICT(address) DO UPDATE SET label = excluded.label`,
		address, label, time.Now().UnixMilli())
	return err
}

// RemoveWatch deletes address and reports whether it was present.
func (db *DB) RemoveWatch(ctx context.Context, address string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM watchlist WHERE address = ?`, address)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWatches returns the watchlist ordered by when entries were added.
func (db *DB) ListWatches(ctx context.Context) ([]WatchEntry, error) {
	rows, err := db.QueryContext(ctx, `SELECT address, label, added_at FROM watchlist ORDER BY added_at, address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WatchEntry
	for rows.Next() {
		var (
			w     WatchEntry
			added int64
		)
		if err := rows.Scan(&w.Address, &w.Label, &added); err != nil {
			return nil, err
		}
		w.AddedAt = time.UnixMilli(added)
		out = append(out, w)
	}
	return out, rows.Err()
}
