package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_TokenSendsHeaders(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.Header.Get("x-api-key")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":{"name":"Bonk","symbol":"BONK"},"pools":[{"price":{"usd":0.0000213}}],"risk":{"score":3,"rugged":false}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	resp, err := c.Token(context.Background(), "So1anaMint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/tokens/So1anaMint" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected accept json, got %q", gotAccept)
	}
	if resp.Token.Symbol != "BONK" {
		t.Errorf("unexpected symbol %q", resp.Token.Symbol)
	}
	if got := resp.Pools[0].Price.USD.Decimal.String(); got != "0.0000213" {
		t.Errorf("price lost precision: %s", got)
	}
}

func TestClient_HoldersPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"total":2,"accounts":[{"wallet":"A","percentage":12.5},{"wallet":"B","percentage":1}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	resp, err := c.Holders(context.Background(), "a/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/tokens/a%2Fb/holders" {
		t.Errorf("address not path-escaped: %q", gotPath)
	}
	if len(resp.Accounts) != 2 || resp.Accounts[0].Address() != "A" {
		t.Errorf("unexpected accounts: %+v", resp.Accounts)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", time.Second)
	_, err := c.Token(context.Background(), "x")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusUnauthorized {
		t.Errorf("unexpected status %d", se.StatusCode)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected body in error, got %q", err.Error())
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	if _, err := c.Holders(context.Background(), "x"); err == nil {
		t.Fatal("expected decode error")
	}
}
