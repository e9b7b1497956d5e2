package entry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	mfs "github.com/CageChen/entryhub/internal/fs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many paths a batch resolves at once.
const DefaultConcurrency = 16

// Observer receives resolution measurements.
type Observer interface {
	ObserveResolution(outcome string, d time.Duration)
	ObserveBatch(requested, resolved int)
}

type nopObserver struct{}

func (nopObserver) ObserveResolution(string, time.Duration) {}
func (nopObserver) ObserveBatch(int, int)                   {}

// Resolver turns paths into entries. It holds no per-call state, caches nothing
// and is safe for concurrent use.
type Resolver struct {
	fs       mfs.FileSystem
	logger   *zap.Logger
	observer Observer
	limit    int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for failed resolutions.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithConcurrency bounds batch fan-out. Values below 1 resolve sequentially.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n < 1 {
			n = 1
		}
		r.limit = n
	}
}

// NewResolver creates a Resolver reading from fsys.
func NewResolver(fsys mfs.FileSystem, opts ...Option) *Resolver {
	r := &Resolver{
		fs:       fsys,
		logger:   zap.NewNop(),
		observer: nopObserver{},
		limit:    DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get resolves a single path. Any failure is returned; no partial entry is produced.
func (r *Resolver) Get(ctx context.Context, path string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	start := time.Now()
	e, err := r.build(path, "")
	r.observer.ObserveResolution(Kind(err), time.Since(start))
	if err != nil {
		r.logger.Debug("entry resolution failed",
			zap.String("path", path),
			zap.String("kind", Kind(err)),
			zap.Error(err),
		)
		return Entry{}, err
	}
	return e, nil
}

// build stats path once and assembles the entry. A non-empty name replaces the
// final path component, which lets filesystem roots be named after themselves.
func (r *Resolver) build(path, name string) (Entry, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return Entry{}, err
	}

	var typ Type
	switch {
	case info.IsRegular():
		typ = TypeFile
	case info.IsDir():
		typ = TypeDirectory
	default:
		return Entry{}, fmt.Errorf("%w: %s (%s)", ErrUnknownEntryType, path, info.Mode.Type())
	}

	created, err := millis(info.BirthTime)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: creation time of %s", err, path)
	}
	accessed, err := millis(info.AccessTime)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: access time of %s", err, path)
	}
	modified, err := millis(info.ModTime)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: modification time of %s", err, path)
	}

	if name == "" {
		name, err = Name(path)
		if err != nil {
			return Entry{}, err
		}
	}

	size := info.Size
	if typ == TypeDirectory {
		size = 0
	}

	u, err := FileURL(path)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		DateCreated:    created,
		DateLastOpened: accessed,
		DateModified:   modified,
		Name:           name,
		Path:           path,
		Size:           size,
		Type:           typ,
		URL:            u,
	}, nil
}

// ResolveAll resolves every path and reports one result per path, in input order.
// The returned error is only ever the context's.
func (r *Resolver) ResolveAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, p := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			e, err := r.Get(ctx, p)
			results[i] = Result{Path: p, Entry: e, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetForPaths resolves paths and keeps only the successes, in input order.
// Paths that fail are dropped silently.
func (r *Resolver) GetForPaths(ctx context.Context, paths []string) ([]Entry, error) {
	results, err := r.ResolveAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for _, res := range results {
		if res.OK() {
			entries = append(entries, res.Entry)
		}
	}
	r.observer.ObserveBatch(len(paths), len(entries))
	return entries, nil
}

// List returns entries for the immediate children of dir, in the order the
// filesystem enumerates them. Only a failure to read dir itself is returned.
func (r *Resolver) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children, err := r.fs.ReadDir(dir)
	if err != nil {
		r.logger.Debug("directory listing failed", zap.String("path", dir), zap.Error(err))
		return nil, err
	}

	paths := make([]string, len(children))
	for i, c := range children {
		paths[i] = filepath.Join(dir, c.Name)
	}
	return r.GetForPaths(ctx, paths)
}

// GetParent resolves the parent directory of path.
func (r *Resolver) GetParent(ctx context.Context, path string) (Entry, error) {
	parent, err := Parent(path)
	if err != nil {
		return Entry{}, err
	}
	return r.Get(ctx, parent)
}

// Hierarchy returns the filesystem root with the chain of directories leading to
// path expanded, each level holding its listed children. The root is named after
// its own path.
func (r *Resolver) Hierarchy(ctx context.Context, path string) (*Node, error) {
	chain, err := Ancestors(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootEntry, err := r.build(chain[0], chain[0])
	if err != nil {
		return nil, err
	}
	root := &Node{Entry: rootEntry}

	node := root
	for i, dir := range chain {
		children, err := r.List(ctx, dir)
		if err != nil {
			return nil, err
		}

		var next *Node
		node.Children = make([]*Node, len(children))
		for j, child := range children {
			node.Children[j] = &Node{Entry: child}
			if i+1 < len(chain) && child.IsDir() && child.Path == chain[i+1] {
				next = node.Children[j]
			}
		}
		// Stop when the next ancestor did not resolve among the children.
		if next == nil {
			break
		}
		node = next
	}
	return root, nil
}
