package schema

import "context"

// SnapshotRecorder persists rendered lookups. The history store implements it.
type SnapshotRecorder interface {
	RecordToken(ctx context.Context, s *TokenSnapshot, text string) error
	RecordHolders(ctx context.Context, r *HolderReport, text string) error
}
