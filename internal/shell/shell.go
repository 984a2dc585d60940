// Package shell keeps the game's static assets available offline: a fixed
// asset list pre-cached on install and a cache-through fetcher.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

const CacheName = "spider-quest-v2"

// Assets is the pre-cache list, relative to the bundle root.
var Assets = []string{
	"./",
	"./index.html",
	"./style.css",
	"./script.js",
	"./manifest.json",
	"./icon-192.png",
	"./icon-512.png",
	"./books/Spiders_Eight_Legs_of_Awesome_8p5x8p5.pdf",
	"./books/Spiders_Eight_Legs_of_Awesome_8x10.pdf",
}

var ErrNotFound = errors.New("asset not found")

// Origin serves assets that are not cached yet.
type Origin interface {
	Fetch(ctx context.Context, asset string) ([]byte, error)
}

// DirOrigin serves assets from a bundle directory. "./" maps to index.html.
type DirOrigin struct {
	Root string
}

func (d DirOrigin) Fetch(ctx context.Context, asset string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := Clean(asset)
	if err != nil {
		return nil, err
	}
	if rel == "" {
		rel = "index.html"
	}
	b, err := os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", asset, ErrNotFound)
	}
	return b, err
}

// Clean normalises an asset path to a slash-separated path relative to the
// bundle root. Paths escaping the root are rejected.
func Clean(asset string) (string, error) {
	if strings.Contains(asset, "..") {
		return "", fmt.Errorf("%s: %w", asset, ErrNotFound)
	}
	p := path.Clean("/" + strings.TrimPrefix(asset, "./"))
	return strings.TrimPrefix(p, "/"), nil
}

// Fetcher answers from its cache and falls back to the origin, caching what
// the origin returns.
type Fetcher struct {
	origin Origin
	mu     sync.RWMutex
	cache  map[string][]byte
}

func NewFetcher(origin Origin) *Fetcher {
	return &Fetcher{origin: origin, cache: map[string][]byte{}}
}

func (f *Fetcher) Fetch(ctx context.Context, asset string) ([]byte, error) {
	key, err := Clean(asset)
	if err != nil {
		return nil, err
	}
	f.mu.RLock()
	b, ok := f.cache[key]
	f.mu.RUnlock()
	if ok {
		return b, nil
	}
	b, err = f.origin.Fetch(ctx, asset)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.cache[key] = b
	f.mu.Unlock()
	return b, nil
}

// Install fetches every asset and caches them together. Nothing is cached
// when any asset is missing.
func (f *Fetcher) Install(ctx context.Context) error {
	staged := make(map[string][]byte, len(Assets))
	for _, a := range Assets {
		b, err := f.origin.Fetch(ctx, a)
		if err != nil {
			return fmt.Errorf("install %s: %w", CacheName, err)
		}
		key, _ := Clean(a)
		staged[key] = b
	}
	f.mu.Lock()
	for k, v := range staged {
		f.cache[k] = v
	}
	f.mu.Unlock()
	return nil
}

func (f *Fetcher) Cached(asset string) bool {
	key, err := Clean(asset)
	if err != nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.cache[key]
	return ok
}

func (f *Fetcher) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.cache)
}
