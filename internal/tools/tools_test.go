package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/schema"
)

type stubSource struct {
	err error
}

func (s *stubSource) Token(_ context.Context, address string) (*schema.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	r := &schema.TokenResponse{}
	r.Token.Name = "Stub " + address
	r.Token.Symbol = "STB"
	return r, nil
}

func (s *stubSource) Holders(_ context.Context, _ string) (*schema.HoldersResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &schema.HoldersResponse{}, nil
}

func newTestRegistry(src schema.TokenSource) *Registry {
	return NewRegistryBuilder().
		WithTool(NewTokenRiskTool(adapter.NewTokenRisk(src, nil))).
		WithTool(NewHolderConcentrationTool(adapter.NewHolderConcentration(src, nil))).
		Build()
}

func TestRegistry_Names(t *testing.T) {
	r := newTestRegistry(&stubSource{})
	got := r.Names()
	want := []string{"get_holder_concentration", "get_token_risk"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if r.GetTool(ToolTokenRisk) == nil {
		t.Error("expected token risk tool to be registered")
	}
	if r.GetTool("missing") != nil {
		t.Error("expected nil for unknown tool")
	}
}

func TestTools_ParametersAreValidJSON(t *testing.T) {
	for _, tool := range newTestRegistry(&stubSource{}).AllTools().Tools() {
		var v map[string]any
		if err := json.Unmarshal(tool.Parameters(), &v); err != nil {
			t.Errorf("%s: invalid parameters: %v", tool.Name(), err)
		}
	}
}

func TestTokenRiskTool_Execute(t *testing.T) {
	tool := NewTokenRiskTool(adapter.NewTokenRisk(&stubSource{}, nil))
	out, err := tool.Execute(context.Background(), map[string]any{"token_address": "  Mint1 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Token: Stub Mint1 (STB)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTools_MissingAddress(t *testing.T) {
	for _, tool := range newTestRegistry(&stubSource{}).AllTools().Tools() {
		for _, params := range []map[string]any{{}, {"token_address": "   "}, {"token_address": 42}} {
			out, err := tool.Execute(context.Background(), params)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tool.Name(), err)
			}
			if out != "Error: token_address is required" {
				t.Errorf("%s: unexpected output %q", tool.Name(), out)
			}
		}
	}
}

func TestTools_UpstreamFailure(t *testing.T) {
	r := newTestRegistry(&stubSource{err: errors.New("no route to host")})
	for _, tool := range r.AllTools().Tools() {
		out, err := tool.Execute(context.Background(), map[string]any{"token_address": "x"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tool.Name(), err)
		}
		if !strings.HasPrefix(out, "Error: ") {
			t.Errorf("%s: expected Error: prefix, got %q", tool.Name(), out)
		}
	}
}
