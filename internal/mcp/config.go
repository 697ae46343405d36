package mcp

// ClientConfig holds the connection parameters for a remote MCP server.
// Command starts a stdio subprocess; otherwise URL is used.
type ClientConfig struct {
	Command string
	Args    []string
	Env     map[string]string
	URL     string
	Headers map[string]string
}
