package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// ErrToolFailed is returned by CallTool when the server flags the result as an error.
var ErrToolFailed = errors.New("tool reported an error")

// Client talks to a single MCP server over stdio or streamable HTTP.
type Client struct {
	cfg ClientConfig
	mcp *mcpclient.Client
}

// NewClient creates a Client. Call Connect before use.
func NewClient(cfg ClientConfig) *Client {
	return &Client{cfg: cfg}
}

// Connect starts the subprocess or prepares the HTTP transport, then performs
// the initialize handshake.
func (c *Client) Connect(ctx context.Context) error {
	var err error
	switch {
	case c.cfg.Command != "":
		c.mcp, err = mcpclient.NewStdioMCPClient(c.cfg.Command, envList(c.cfg.Env), c.cfg.Args...)
		if err != nil {
			return fmt.Errorf("start MCP server: %w", err)
		}
	case c.cfg.URL != "":
		var opts []transport.StreamableHTTPCOption
		if len(c.cfg.Headers) > 0 {
			opts = append(opts, transport.WithHTTPHeaders(c.cfg.Headers))
		}
		c.mcp, err = mcpclient.NewStreamableHttpClient(c.cfg.URL, opts...)
		if err != nil {
			return fmt.Errorf("create MCP HTTP client: %w", err)
		}
		if err := c.mcp.Start(ctx); err != nil {
			c.Close()
			return fmt.Errorf("start MCP HTTP client: %w", err)
		}
	default:
		return errors.New("mcp client: no command or url configured")
	}

	req := mcpgo.InitializeRequest{}
	req.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpgo.Implementation{Name: "tokenguard", Version: "1.0"}
	if _, err := c.mcp.Initialize(ctx, req); err != nil {
		c.Close()
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

// Close stops the subprocess or HTTP session, if any.
func (c *Client) Close() {
	if c.mcp != nil {
		_ = c.mcp.Close()
		c.mcp = nil
	}
}

// ListTools returns the tools exposed by the server.
func (c *Client) ListTools(ctx context.Context) ([]*RemoteTool, error) {
	if c.mcp == nil {
		return nil, errors.New("mcp client: not connected")
	}
	res, err := c.mcp.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}

	out := make([]*RemoteTool, 0, len(res.Tools))
	for _, t := range res.Tools {
		if t.Name == "" {
			continue
		}
		params, err := json.Marshal(t.InputSchema)
		if err != nil || (t.InputSchema.Type == "" && len(t.InputSchema.Properties) == 0) {
			params = json.RawMessage(`{"type":"object","properties":{}}`)
		}
		out = append(out, &RemoteTool{client: c, name: t.Name, description: t.Description, parameters: params})
	}
	return out, nil
}

// CallTool invokes a tool and joins its text content. When the server marks
// the result as an error the text is still returned together with ErrToolFailed.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if c.mcp == nil {
		return "", errors.New("mcp client: not connected")
	}
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tools/call %s: %w", name, err)
	}

	var parts []string
	for _, content := range res.Content {
		if text, ok := mcpgo.AsTextContent(content); ok && text.Text != "" {
			parts = append(parts, text.Text)
		}
	}
	out := strings.Join(parts, "\n")
	if res.IsError {
		return out, ErrToolFailed
	}
	return out, nil
}

func envList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
