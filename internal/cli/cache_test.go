package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/reactorsim/pkg/cache"
)

func TestCacheDirDefault(t *testing.T) {
	_, cacheHome := isolateConfig(t)

	c := New(os.Stderr, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(cacheHome, "reactorsim"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirOverride(t *testing.T) {
	isolateConfig(t)

	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/tmp/elsewhere"
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/elsewhere" {
		t.Errorf("cacheDir() = %q, want override", dir)
	}
}

func TestCachePathCommand(t *testing.T) {
	_, cacheHome := isolateConfig(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(cacheHome, "reactorsim"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	_, cacheHome := isolateConfig(t)
	ctx := context.Background()

	fc, err := cache.NewFileCache(filepath.Join(cacheHome, "reactorsim"))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"a", "b"} {
		if _, ok, _ := fc.Get(ctx, key); ok {
			t.Errorf("entry %q survived cache clear", key)
		}
	}
}

func TestCacheClearEmpty(t *testing.T) {
	isolateConfig(t)
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
}

func TestRenderUsesFileCache(t *testing.T) {
	_, cacheHome := isolateConfig(t)
	out := filepath.Join(t.TempDir(), "scene.txt")

	if _, err := runCLI(t, "render", "-p", "30", "-f", "txt", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	entries, err := filepath.Glob(filepath.Join(cacheHome, "reactorsim", "*", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("render should populate the file cache")
	}
}
