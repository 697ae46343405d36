package dependency

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tokenguard/tokenguard/internal/config"
	"github.com/tokenguard/tokenguard/internal/tools"
)

func TestNew_WithHistory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	c, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if _, err := c.History(); err != nil {
		t.Errorf("History: %v", err)
	}
	if c.Watcher() == nil {
		t.Error("expected watcher when history is enabled")
	}
	for _, name := range []tools.ToolName{tools.ToolTokenRisk, tools.ToolHolderConcentration} {
		if c.Registry().GetTool(name) == nil {
			t.Errorf("tool %s not registered", name)
		}
	}
	if got := c.Registry().Names(); len(got) != 2 || got[0] != string(tools.ToolHolderConcentration) {
		t.Errorf("unexpected tool names %v", got)
	}
	if c.MCPServer() == nil {
		t.Error("MCP server not wired")
	}
}

func TestNew_WithoutHistory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Enabled = false

	c, err := New(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if _, err := c.History(); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("expected ErrHistoryDisabled, got %v", err)
	}
	if c.Watcher() != nil {
		t.Error("expected no watcher without history")
	}
	if c.Registry().GetTool(tools.ToolTokenRisk) == nil || c.Registry().GetTool(tools.ToolHolderConcentration) == nil {
		t.Error("tools not wired")
	}
}
