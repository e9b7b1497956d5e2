package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var errNotDir = errors.New("not a directory")

// Times groups the three timestamps a stat call reports.
type Times struct {
	Birth  time.Time
	Access time.Time
	Modify time.Time
}

// SameTimes returns Times with all three stamps set to t.
func SameTimes(t time.Time) Times {
	return Times{Birth: t, Access: t, Modify: t}
}

type memNode struct {
	info     FileInfo
	children []string
}

// MemFS implements FileSystem over an in-memory tree. Paths are cleaned before lookup
// and children are listed in the order they were added. It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	nodes map[string]*memNode
	errs  map[string]error
}

// NewMemFS creates an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		nodes: make(map[string]*memNode),
		errs:  make(map[string]error),
	}
}

// AddDir adds a directory at path.
func (m *MemFS) AddDir(path string, times Times) *MemFS {
	return m.add(path, os.ModeDir|0o755, 4096, times)
}

// AddFile adds a regular file of the given size at path.
func (m *MemFS) AddFile(path string, size int64, times Times) *MemFS {
	return m.add(path, 0o644, size, times)
}

// AddSpecial adds a node whose mode is neither a regular file nor a directory,
// such as os.ModeSocket or os.ModeSymlink.
func (m *MemFS) AddSpecial(path string, mode os.FileMode, times Times) *MemFS {
	return m.add(path, mode, 0, times)
}

// FailOn makes Stat and ReadDir for path return err.
func (m *MemFS) FailOn(path string, err error) *MemFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[filepath.Clean(path)] = err
	return m
}

func (m *MemFS) add(path string, mode os.FileMode, size int64, times Times) *MemFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if _, exists := m.nodes[path]; !exists {
		parent := filepath.Dir(path)
		if p, ok := m.nodes[parent]; ok && parent != path {
			p.children = append(p.children, path)
		}
	}
	m.nodes[path] = &memNode{info: FileInfo{
		Name:       filepath.Base(path),
		Mode:       mode,
		Size:       size,
		ModTime:    times.Modify,
		AccessTime: times.Access,
		BirthTime:  times.Birth,
	}}
	return m
}

// Stat returns the metadata recorded for path.
func (m *MemFS) Stat(path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := filepath.Clean(path)
	if err, ok := m.errs[key]; ok {
		return FileInfo{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	n, ok := m.nodes[key]
	if !ok || path == "" {
		return FileInfo{}, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return n.info, nil
}

// ReadDir lists the children of the directory at path in insertion order.
func (m *MemFS) ReadDir(path string) ([]DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := filepath.Clean(path)
	if err, ok := m.errs[key]; ok {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: err}
	}
	n, ok := m.nodes[key]
	if !ok || path == "" {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	if !n.info.IsDir() {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: errNotDir}
	}
	result := make([]DirEntry, 0, len(n.children))
	for _, child := range n.children {
		c := m.nodes[child]
		result = append(result, DirEntry{Name: c.info.Name, IsDir: c.info.IsDir()})
	}
	return result, nil
}
