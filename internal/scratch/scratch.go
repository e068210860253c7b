package scratch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Error represents a scratch-directory failure
type Error struct {
	Operation string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("scratch error during %s", e.Operation)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path: %s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultNamespace is the fixed subdirectory of the system temp root used
// as the conversion cache when no root is configured.
const DefaultNamespace = "deckpeek"

// Config holds configuration for the scratch directory
type Config struct {
	Root       string
	Logger     *slog.Logger // Optional: custom logger (defaults to discard)
	FileSystem FileSystem   // Optional: custom filesystem (defaults to OS filesystem)
}

// Dir is the long-lived scratch directory used as both working directory and
// cache store for conversion outputs. It is created lazily and never torn
// down; entries are invalidated only by source-file freshness comparison.
type Dir struct {
	root   string
	logger *slog.Logger
	fs     FileSystem
}

// New creates a scratch directory manager and ensures the directory exists
func New(config Config) (*Dir, error) {
	ctx := context.Background()

	if config.Root == "" {
		config.Root = filepath.Join(os.TempDir(), DefaultNamespace)
	}
	if config.FileSystem == nil {
		config.FileSystem = NewOSFileSystem()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Dir{
		root:   config.Root,
		logger: config.Logger,
		fs:     config.FileSystem,
	}

	if err := d.Ensure(); err != nil {
		config.Logger.ErrorContext(ctx, "failed to create scratch directory",
			"error", err,
			"path", config.Root,
		)
		return nil, err
	}

	config.Logger.InfoContext(ctx, "scratch directory ready",
		"path", config.Root,
	)

	return d, nil
}

// Root returns the scratch directory path
func (d *Dir) Root() string {
	return d.root
}

// Ensure creates the scratch directory if absent. Safe to call repeatedly.
func (d *Dir) Ensure() error {
	if err := d.fs.MkdirAll(d.root, 0755); err != nil {
		return &Error{Operation: "create directory", Path: d.root, Err: err}
	}
	return nil
}

// IsAccessible reports whether the scratch directory exists and is a directory
func (d *Dir) IsAccessible() bool {
	info, err := d.fs.Stat(d.root)
	return err == nil && info.IsDir()
}

// Basename returns the source file name with directory and extension stripped.
// It is the cache key: two sources sharing a basename share a cache slot.
func Basename(source string) string {
	name := filepath.Base(source)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// PDFPath returns the deterministic output path for a source file
func (d *Dir) PDFPath(source string) string {
	return filepath.Join(d.root, Basename(source)+".pdf")
}

// Exists reports whether a file exists at the given path
func (d *Dir) Exists(path string) bool {
	_, err := d.fs.Stat(path)
	return err == nil
}

// IsFresh reports whether the cached output at outputPath is valid for
// source: it must exist and its modification time must be strictly later
// than the source's. Missing files on either side mean not fresh.
func (d *Dir) IsFresh(outputPath, source string) bool {
	outInfo, err := d.fs.Stat(outputPath)
	if err != nil {
		return false
	}
	srcInfo, err := d.fs.Stat(source)
	if err != nil {
		return false
	}
	return outInfo.ModTime().After(srcInfo.ModTime())
}

// ListImages returns the scratch-dir files whose name is prefixed by the
// source basename and suffixed by ext, sorted lexically ascending. The
// converter emits zero-padded page numbers, so lexical order is page order.
func (d *Dir) ListImages(source, ext string) ([]string, error) {
	entries, err := d.fs.ReadDir(d.root)
	if err != nil {
		return nil, &Error{Operation: "read directory", Path: d.root, Err: err}
	}

	base := Basename(source)
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, base) && strings.HasSuffix(name, ext) {
			paths = append(paths, filepath.Join(d.root, name))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// RemoveImages deletes every cached image for the source basename so that a
// fresh conversion cannot be mixed with pages left over from an earlier run
// with a higher page count.
func (d *Dir) RemoveImages(source, ext string) error {
	ctx := context.Background()

	paths, err := d.ListImages(source, ext)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := d.fs.Remove(path); err != nil {
			return &Error{Operation: "remove stale image", Path: path, Err: err}
		}
	}
	if len(paths) > 0 {
		d.logger.DebugContext(ctx, "removed stale images",
			"source", source,
			"count", len(paths),
		)
	}
	return nil
}

// Artifact reads a file from the scratch directory by bare name. Names
// containing path separators or traversal elements are rejected.
func (d *Dir) Artifact(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, &Error{
			Operation: "read artifact",
			Path:      name,
			Err:       fmt.Errorf("invalid artifact name"),
		}
	}

	data, err := d.fs.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		return nil, &Error{Operation: "read artifact", Path: name, Err: err}
	}
	return data, nil
}
