package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type countingOrigin struct {
	files map[string][]byte
	calls int
}

func (c *countingOrigin) Fetch(ctx context.Context, asset string) ([]byte, error) {
	c.calls++
	key, err := Clean(asset)
	if err != nil {
		return nil, err
	}
	b, ok := c.files[key]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func fullBundle() map[string][]byte {
	files := map[string][]byte{}
	for _, a := range Assets {
		key, _ := Clean(a)
		files[key] = []byte(a)
	}
	return files
}

func TestFetchIsCacheThrough(t *testing.T) {
	origin := &countingOrigin{files: map[string][]byte{"style.css": []byte("body{}")}}
	f := NewFetcher(origin)
	for i := 0; i < 3; i++ {
		b, err := f.Fetch(context.Background(), "./style.css")
		if err != nil || string(b) != "body{}" {
			t.Fatalf("fetch: %q %v", b, err)
		}
	}
	if origin.calls != 1 {
		t.Fatalf("expected one origin call, got %d", origin.calls)
	}
	if !f.Cached("style.css") {
		t.Fatalf("expected cached")
	}
}

func TestFetchMissIsNotCached(t *testing.T) {
	f := NewFetcher(&countingOrigin{files: map[string][]byte{}})
	if _, err := f.Fetch(context.Background(), "./nope.js"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.Len() != 0 {
		t.Fatalf("misses must not be cached")
	}
}

func TestInstallCachesEveryAsset(t *testing.T) {
	origin := &countingOrigin{files: fullBundle()}
	f := NewFetcher(origin)
	if err := f.Install(context.Background()); err != nil {
		t.Fatalf("install: %v", err)
	}
	for _, a := range Assets {
		if !f.Cached(a) {
			t.Fatalf("%s not cached", a)
		}
	}
}

func TestInstallFailsAsAWhole(t *testing.T) {
	files := fullBundle()
	delete(files, "icon-512.png")
	f := NewFetcher(&countingOrigin{files: files})
	if err := f.Install(context.Background()); err == nil {
		t.Fatalf("expected install failure")
	}
	if f.Len() != 0 {
		t.Fatalf("partial install must cache nothing, got %d", f.Len())
	}
}

func TestDirOriginMapsRootToIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := DirOrigin{Root: dir}.Fetch(context.Background(), "./")
	if err != nil || string(b) != "<html>" {
		t.Fatalf("fetch root: %q %v", b, err)
	}
	if _, err := (DirOrigin{Root: dir}).Fetch(context.Background(), "../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected escape rejected, got %v", err)
	}
}
