package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const appDoc = `
name = "app"
kind = "row"
width = "flex"
height = "flex"
spacing = 10

[[children]]
name = "nav"
width = 120
height = "flex"

[[children]]
name = "main"
width = "flex"
height = "flex"
`

// newTestCLI returns a CLI whose output is captured and whose config and
// cache directories live under t.TempDir.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	c.Err = io.Discard
	return c, &out
}

// run executes the root command with args.
func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	want := []string{"cache", "completion", "serve", "solve", "watch"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"json,dot", []string{"json", "dot"}},
		{" dot , svg ,", []string{"dot", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	c, out := newTestCLI(t)
	if err := run(t, c, "completion", "bash"); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("flow")) {
		t.Error("bash completion should mention the command name")
	}

	if err := run(t, c, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestNewRunnerTTL(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.TTL = "90m"

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close()

	if r.SnapshotTTL.Minutes() != 90 || r.ArtifactTTL.Minutes() != 90 {
		t.Errorf("TTLs = %v/%v, want 90m", r.SnapshotTTL, r.ArtifactTTL)
	}
}

func TestNewCacheUnknownBackend(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.Backend = "memcached"

	if _, err := c.newCache(context.Background(), false); err == nil {
		t.Error("unknown backend should fail")
	}
	if _, err := c.newCache(context.Background(), true); err != nil {
		t.Errorf("--no-cache should bypass the backend: %v", err)
	}
}
