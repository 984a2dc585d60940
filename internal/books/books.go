// Package books exposes the two picture-book PDFs shipped with the bundle.
package books

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"spiderquest/internal/shell"
)

var (
	ErrOpenBlocked = errors.New("could not open the book viewer")
	ErrUnknownBook = errors.New("unknown book")
)

type Book struct {
	ID       string
	Title    string
	Filename string
}

func (b Book) Asset() string { return "./books/" + b.Filename }

// Catalog lists the books in display order.
var Catalog = []Book{
	{ID: "square", Title: "Spiders: Eight Legs of Awesome (8.5x8.5)", Filename: "Spiders_Eight_Legs_of_Awesome_8p5x8p5.pdf"},
	{ID: "portrait", Title: "Spiders: Eight Legs of Awesome (8x10)", Filename: "Spiders_Eight_Legs_of_Awesome_8x10.pdf"},
}

func Find(id string) (Book, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, b := range Catalog {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, fmt.Errorf("%q: %w", id, ErrUnknownBook)
}

// Opener hands a local file to a viewer.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// SystemOpener uses the platform's default document viewer. The viewer is
// reaped in the background once it exits.
type SystemOpener struct {
	// Command builds the viewer process; nil selects the platform default.
	Command func(ctx context.Context, path string) *exec.Cmd
	// Exited, when set, receives the viewer's exit status.
	Exited func(path string, err error)
}

func (o SystemOpener) Open(ctx context.Context, path string) error {
	build := o.Command
	if build == nil {
		build = platformViewer
	}
	cmd := build(ctx, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		err := cmd.Wait()
		if o.Exited != nil {
			o.Exited(path, err)
		}
	}()
	return nil
}

func platformViewer(ctx context.Context, path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", path)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.CommandContext(ctx, "xdg-open", path)
	}
}

type Fetcher interface {
	Fetch(ctx context.Context, asset string) ([]byte, error)
}

type Library struct {
	fetcher  Fetcher
	opener   Opener
	cacheDir string
}

// NewLibrary serves books through fetcher. Opened books are materialised
// under cacheDir.
func NewLibrary(fetcher Fetcher, opener Opener, cacheDir string) *Library {
	if opener == nil {
		opener = SystemOpener{}
	}
	return &Library{fetcher: fetcher, opener: opener, cacheDir: cacheDir}
}

// Available reports whether the library has a bundle to read from.
func (l *Library) Available() bool { return l != nil && l.fetcher != nil }

// Open shows the book in the platform viewer.
func (l *Library) Open(ctx context.Context, id string) (string, error) {
	path, err := l.Download(ctx, id, l.cacheDir)
	if err != nil {
		return "", err
	}
	if err := l.opener.Open(ctx, path); err != nil {
		return path, fmt.Errorf("%w: %v", ErrOpenBlocked, err)
	}
	return path, nil
}

// Download copies the book into dir under its original file name.
func (l *Library) Download(ctx context.Context, id, dir string) (string, error) {
	book, err := Find(id)
	if err != nil {
		return "", err
	}
	if !l.Available() {
		return "", fmt.Errorf("%s: %w", book.Filename, shell.ErrNotFound)
	}
	b, err := l.fetcher.Fetch(ctx, book.Asset())
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", book.Filename, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	dst := filepath.Join(dir, book.Filename)
	tmp := dst + ".part"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}
