// Package cache keeps recent token-data responses in memory so repeated
// lookups within the TTL do not reach the remote API.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// Source wraps a schema.TokenSource with an expirable LRU and collapses
// concurrent identical requests. Errors are never cached.
type Source struct {
	next    schema.TokenSource
	tokens  *expirable.LRU[string, *schema.TokenResponse]
	holders *expirable.LRU[string, *schema.HoldersResponse]
	group   singleflight.Group
}

// New returns next unchanged when ttl <= 0, otherwise a caching Source.
func New(next schema.TokenSource, size int, ttl time.Duration) schema.TokenSource {
	if ttl <= 0 {
		return next
	}
	if size <= 0 {
		size = 256
	}
	return &Source{
		next:    next,
		tokens:  expirable.NewLRU[string, *schema.TokenResponse](size, nil, ttl),
		holders: expirable.NewLRU[string, *schema.HoldersResponse](size, nil, ttl),
	}
}

// Token returns the cached token response or fetches it.
func (s *Source) Token(ctx context.Context, address string) (*schema.TokenResponse, error) {
	if v, ok := s.tokens.Get(address); ok {
		return v, nil
	}
	v, err := s.shared(ctx, "token:"+address, func(fetchCtx context.Context) (any, error) {
		resp, err := s.next.Token(fetchCtx, address)
		if err != nil {
			return nil, err
		}
		s.tokens.Add(address, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.TokenResponse), nil
}

// Holders returns the cached holders response or fetches it.
func (s *Source) Holders(ctx context.Context, address string) (*schema.HoldersResponse, error) {
	if v, ok := s.holders.Get(address); ok {
		return v, nil
	}
	v, err := s.shared(ctx, "holders:"+address, func(fetchCtx context.Context) (any, error) {
		resp, err := s.next.Holders(fetchCtx, address)
		if err != nil {
			return nil, err
		}
		s.holders.Add(address, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.HoldersResponse), nil
}

// shared runs fetch once per key for all concurrent callers. The fetch is
// detached from any single caller's cancellation; each caller stops waiting
// when its own ctx is done. The upstream client timeout bounds the fetch.
func (s *Source) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return fetch(fetchCtx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
