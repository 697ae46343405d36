// Package dependency wires tokenguard services using go.uber.org/dig.
package dependency

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/cache"
	"github.com/tokenguard/tokenguard/internal/config"
	"github.com/tokenguard/tokenguard/internal/mcp"
	"github.com/tokenguard/tokenguard/internal/notify"
	"github.com/tokenguard/tokenguard/internal/schema"
	"github.com/tokenguard/tokenguard/internal/store"
	"github.com/tokenguard/tokenguard/internal/tools"
	"github.com/tokenguard/tokenguard/internal/tracker"
	"github.com/tokenguard/tokenguard/internal/watch"
)

// Version is reported to MCP clients and on /info.
const Version = "0.3.0"

// ErrHistoryDisabled is returned when a command needs the history store but
// it is turned off in config.
var ErrHistoryDisabled = errors.New("history is disabled in config")

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg      *config.Config
	history  *store.DB
	registry *tools.Registry
	server   *mcp.Server
	notifier *notify.Manager
	watcher  *watch.Service
}

func (c *Container) Config() *config.Config    { return c.cfg }
func (c *Container) Registry() *tools.Registry { return c.registry }
func (c *Container) MCPServer() *mcp.Server    { return c.server }
func (c *Container) Notifier() *notify.Manager { return c.notifier }

// History returns the history store, or ErrHistoryDisabled.
func (c *Container) History() (*store.DB, error) {
	if c.history == nil {
		return nil, ErrHistoryDisabled
	}
	return c.history, nil
}

// Watcher returns the watch service, or nil when history is disabled.
func (c *Container) Watcher() *watch.Service { return c.watcher }

// Close releases the history store.
func (c *Container) Close() error {
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}

// New builds and wires all services from cfg.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	d := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		func() context.Context { return ctx },
		newTokenSource,
		newHistory,
		newTokenRisk,
		newHolderConcentration,
		newRegistry,
		newMCPServer,
		newNotifier,
		newWatcher,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		history *store.DB,
		registry *tools.Registry,
		server *mcp.Server,
		notifier *notify.Manager,
		watcher *watch.Service,
	) {
		result = &Container{
			cfg:      cfg,
			history:  history,
			registry: registry,
			server:   server,
			notifier: notifier,
			watcher:  watcher,
		}
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return result, nil
}

func newTokenSource(cfg *config.Config) schema.TokenSource {
	client := tracker.NewClient(cfg.API.BaseURL, cfg.API.APIKey, cfg.APITimeout())
	return cache.New(client, cfg.Cache.Size, cfg.CacheTTL())
}

// newHistory returns a nil store when history is disabled.
func newHistory(ctx context.Context, cfg *config.Config) (*store.DB, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	db, err := store.Open(ctx, cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return db, nil
}

func recorder(db *store.DB) schema.SnapshotRecorder {
	if db == nil {
		return nil
	}
	return db
}

func newTokenRisk(src schema.TokenSource, db *store.DB) *adapter.TokenRisk {
	return adapter.NewTokenRisk(src, recorder(db))
}

func newHolderConcentration(src schema.TokenSource, db *store.DB) *adapter.HolderConcentration {
	return adapter.NewHolderConcentration(src, recorder(db))
}

func newRegistry(risk *adapter.TokenRisk, holders *adapter.HolderConcentration) *tools.Registry {
	return tools.NewRegistryBuilder().
		WithTool(tools.NewTokenRiskTool(risk)).
		WithTool(tools.NewHolderConcentrationTool(holders)).
		Build()
}

func newMCPServer(cfg *config.Config, registry *tools.Registry) *mcp.Server {
	return mcp.NewServer(cfg.Server.Name, Version, registry.AllTools())
}

func newNotifier(cfg *config.Config) *notify.Manager {
	return notify.NewManager(cfg.Notify)
}

// newWatcher returns nil when there is no history to compare against.
func newWatcher(
	cfg *config.Config,
	db *store.DB,
	risk *adapter.TokenRisk,
	holders *adapter.HolderConcentration,
	notifier *notify.Manager,
) *watch.Service {
	if db == nil {
		return nil
	}
	return watch.NewService(db, risk, holders, notifier, cfg.Watch.Schedule, cfg.Watch.RiskDelta)
}
