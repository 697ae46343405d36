package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/schema"
	"github.com/tokenguard/tokenguard/internal/tools"
)

// Server exposes a tool list over MCP.
type Server struct {
	mcp *server.MCPServer
}

// NewServer registers every tool in list on a new MCP server.
func NewServer(name, version string, list *tools.ToolList) *Server {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range list.Tools() {
		s.AddTool(mcpgo.NewToolWithRawSchema(t.Name(), t.Description(), t.Parameters()), toolHandler(t))
		slog.Debug("mcp: tool registered", "tool", t.Name())
	}
	return &Server{mcp: s}
}

func toolHandler(t schema.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		out, err := t.Execute(ctx, args)
		if err != nil {
			slog.Error("mcp: tool failed", "tool", t.Name(), "err", err)
			return mcpgo.NewToolResultError(adapter.ErrorText(err)), nil
		}
		if adapter.IsErrorText(out) {
			return mcpgo.NewToolResultError(out), nil
		}
		return mcpgo.NewToolResultText(out), nil
	}
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is done
// or in reaches EOF.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// HTTPHandler returns the streamable HTTP transport handler.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// HandleMessage processes a single JSON-RPC message and returns the encoded
// response, or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, msg json.RawMessage) (json.RawMessage, error) {
	resp := s.mcp.HandleMessage(ctx, msg)
	if resp == nil {
		return nil, nil
	}
	return json.Marshal(resp)
}
