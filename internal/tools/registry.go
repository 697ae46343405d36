package tools

import (
	"sort"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolTokenRisk           ToolName = "get_token_risk"
	ToolHolderConcentration ToolName = "get_holder_concentration"
)

// Registry holds a set of named tools and exposes them for execution.
type Registry struct {
	tools map[string]schema.Tool
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name ToolName) schema.Tool {
	return r.tools[string(name)]
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for k := range r.tools {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) AllTools() *ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(r.tools))}
	for k, t := range r.tools {
		list.tools[k] = t
	}
	return &list
}
