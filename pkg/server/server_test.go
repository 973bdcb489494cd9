package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/graph"
	"github.com/matzehuels/flow/pkg/observability"
	"github.com/matzehuels/flow/pkg/pipeline"
)

const tomlDoc = `
name = "app"
kind = "row"
width = "flex"
height = 100

[[children]]
name = "left"
width = "flex"
height = "flex"

[[children]]
name = "right"
width = "flex(3)"
height = "flex"
`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "server:"), logger)
	srv := httptest.NewServer(New(runner, logger, opts...).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", resp.StatusCode, body)
	}
}

func TestFormats(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(body["formats"], ","); got != "dot,json,svg" {
		t.Errorf("formats = %s, want dot,json,svg", got)
	}
}

func TestLayoutJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/layout?width=400&height=300&place=true", "application/toml", tomlDoc)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Flow-Cache"); got != "miss" {
		t.Errorf("X-Flow-Cache = %q, want miss", got)
	}
	if got := resp.Header.Get("X-Flow-Nodes"); got != "3" {
		t.Errorf("X-Flow-Nodes = %q, want 3", got)
	}

	snap, err := graph.Read(resp.Body)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	right, ok := snap.ByName("right")
	if !ok {
		t.Fatal("right node missing")
	}
	if right.Width != 300 || right.Height != 100 || right.X != 100 {
		t.Errorf("right = %gx%g at x=%g, want 300x100 at x=100", right.Width, right.Height, right.X)
	}

	again := post(t, srv.URL+"/v1/layout?width=400&height=300&place=true", "application/toml", tomlDoc)
	if got := again.Header.Get("X-Flow-Cache"); got != "hit" {
		t.Errorf("second X-Flow-Cache = %q, want hit", got)
	}
}

func TestLayoutDOT(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/layout?format=dot", "", `{"kind": "block", "children": [{"width": 10}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"n2" -> "n1"`) {
		t.Errorf("DOT body missing edge:\n%s", body)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv := newTestServer(t, WithMaxBodySize(64))

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad sizing", "", "application/toml", `width = "flex(0)"`, 400, errors.ErrCodeInvalidSizing},
		{"bad kind", "", "application/json", `{"kind": "column"}`, 400, errors.ErrCodeInvalidDocument},
		{"bad width", "?width=wide", "application/toml", `kind = "empty"`, 400, errors.ErrCodeInvalidViewport},
		{"negative height", "?height=-5", "application/toml", `kind = "empty"`, 400, errors.ErrCodeInvalidViewport},
		{"bad format", "?format=png", "application/toml", `kind = "empty"`, 400, errors.ErrCodeInvalidFormat},
		{"bad place", "?place=maybe", "application/toml", `kind = "empty"`, 400, errors.ErrCodeInvalidInput},
		{"empty body", "", "application/toml", ``, 400, errors.ErrCodeInvalidInput},
		{"unsupported type", "", "application/yaml", `kind: empty`, 415, errors.ErrCodeUnsupported},
		{"too large", "", "application/toml", `name = "` + strings.Repeat("a", 100) + `"`, 400, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/layout"+tt.query, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			detail := decodeError(t, resp)
			if detail.Code != tt.code {
				t.Errorf("code = %s, want %s (message %q)", detail.Code, tt.code, detail.Message)
			}
			if detail.RequestID == "" {
				t.Error("request_id missing from error body")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/layout = %d, want 405", resp.StatusCode)
	}
}

func TestHTTPHooks(t *testing.T) {
	defer observability.Reset()
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	srv := newTestServer(t)
	post(t, srv.URL+"/v1/layout", "application/toml", `kind = "empty"`)
	post(t, srv.URL+"/v1/layout", "application/toml", `kind = "column"`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if got := strings.Join(hooks.statuses, ","); got != "200,400" {
		t.Errorf("statuses = %s, want 200,400", got)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []string
	errors   int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, strconv.Itoa(status))
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
