package mcp

import (
	"context"
	"encoding/json"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// RemoteTool is a tool discovered on a remote MCP server.
type RemoteTool struct {
	client      *Client
	name        string
	description string
	parameters  json.RawMessage
}

func (w *RemoteTool) Name() string                { return w.name }
func (w *RemoteTool) Description() string         { return w.description }
func (w *RemoteTool) Parameters() json.RawMessage { return w.parameters }

func (w *RemoteTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return w.client.CallTool(ctx, w.name, params)
}

var _ schema.Tool = (*RemoteTool)(nil)
