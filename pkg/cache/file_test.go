package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) = hit %v, err %v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get(key) = %q, want value", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	path := fc.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := Clear(ctx, c); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir removed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
	if got := c.(*FileCache).Dir(); got != dir {
		t.Errorf("Dir() = %s, want %s", got, dir)
	}
}

func TestClearUnsupported(t *testing.T) {
	if err := Clear(context.Background(), NewNullCache()); err != ErrUnsupported {
		t.Errorf("Clear(NullCache) = %v, want ErrUnsupported", err)
	}
}
