package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tokenguard/tokenguard/internal/schema"
)

type countingSource struct {
	tokenCalls  atomic.Int32
	holderCalls atomic.Int32
	fail        atomic.Bool
	delay       time.Duration
}

func (c *countingSource) Token(ctx context.Context, address string) (*schema.TokenResponse, error) {
	c.tokenCalls.Add(1)
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if c.fail.Load() {
		return nil, errors.New("boom")
	}
	r := &schema.TokenResponse{}
	r.Token.Name = address
	return r, nil
}

func (c *countingSource) Holders(_ context.Context, _ string) (*schema.HoldersResponse, error) {
	c.holderCalls.Add(1)
	if c.fail.Load() {
		return nil, errors.New("boom")
	}
	return &schema.HoldersResponse{Total: 1}, nil
}

func TestNew_ZeroTTLDisablesCache(t *testing.T) {
	src := &countingSource{}
	if got := New(src, 10, 0); got != schema.TokenSource(src) {
		t.Fatal("expected the underlying source when ttl is zero")
	}
}

func TestSource_TokenHit(t *testing.T) {
	src := &countingSource{}
	c := New(src, 10, time.Minute)

	for i := 0; i < 3; i++ {
		resp, err := c.Token(context.Background(), "mint")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token.Name != "mint" {
			t.Errorf("unexpected response %+v", resp)
		}
	}
	if n := src.tokenCalls.Load(); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}
}

func TestSource_ErrorsNotCached(t *testing.T) {
	src := &countingSource{}
	src.fail.Store(true)
	c := New(src, 10, time.Minute)

	if _, err := c.Holders(context.Background(), "mint"); err == nil {
		t.Fatal("expected error")
	}
	src.fail.Store(false)
	if _, err := c.Holders(context.Background(), "mint"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := src.holderCalls.Load(); n != 2 {
		t.Errorf("expected 2 upstream calls, got %d", n)
	}
}

func TestSource_Expiry(t *testing.T) {
	src := &countingSource{}
	c := New(src, 10, 20*time.Millisecond)

	_, _ = c.Token(context.Background(), "mint")
	time.Sleep(60 * time.Millisecond)
	_, _ = c.Token(context.Background(), "mint")
	if n := src.tokenCalls.Load(); n != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", n)
	}
}

func TestSource_ConcurrentCollapsed(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	c := New(src, 10, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Token(context.Background(), "mint")
		}()
	}
	wg.Wait()
	if n := src.tokenCalls.Load(); n != 1 {
		t.Errorf("expected concurrent lookups to collapse into 1 call, got %d", n)
	}
}

func TestSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &countingSource{delay: 200 * time.Millisecond}
	c := New(src, 10, time.Minute)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Token(ctxA, "mint")
		errA <- err
	}()

	// Let A start the shared fetch before B joins it.
	time.Sleep(20 * time.Millisecond)
	errB := make(chan error, 1)
	go func() {
		resp, err := c.Token(context.Background(), "mint")
		if err == nil && resp.Token.Name != "mint" {
			err = errors.New("unexpected response")
		}
		errB <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancelA()

	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller: expected context.Canceled, got %v", err)
	}
	if err := <-errB; err != nil {
		t.Errorf("other caller failed: %v", err)
	}
	if n := src.tokenCalls.Load(); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}
	if _, err := c.Token(context.Background(), "mint"); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if n := src.tokenCalls.Load(); n != 1 {
		t.Errorf("expected the shared result to be cached, got %d calls", n)
	}
}
