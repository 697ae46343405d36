package schema

import "context"

// TokenSource fetches raw token data. The tracker client and the cache both
// implement it.
type TokenSource interface {
	Token(ctx context.Context, address string) (*TokenResponse, error)
	Holders(ctx context.Context, address string) (*HoldersResponse, error)
}
