package tools

import (
	"sort"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// ToolList is a snapshot of registered tools, ordered by name on iteration.
type ToolList struct {
	tools map[string]schema.Tool
}

func NewToolList(ts ...schema.Tool) *ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		list.tools[t.Name()] = t
	}

	return &list
}

// Tools returns the tools sorted by name.
func (r *ToolList) Tools() []schema.Tool {
	out := make([]schema.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
