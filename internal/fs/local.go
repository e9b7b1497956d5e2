package fs

import (
	"os"
)

// LocalFS implements FileSystem using the local filesystem. Paths are passed to the OS
// as given; symlinks are followed by Stat and left alone by ReadDir.
type LocalFS struct{}

// NewLocalFS creates a LocalFS.
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

// Stat returns metadata for the file or directory at path, including access and
// birth times where the platform reports them.
func (l *LocalFS) Stat(path string) (FileInfo, error) {
	return statPath(path)
}

// ReadDir lists the immediate children of the directory at path in the order the OS
// reports them.
func (l *LocalFS) ReadDir(path string) ([]DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// File.ReadDir keeps directory order, unlike os.ReadDir which sorts by name.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, len(entries))
	for i, e := range entries {
		result[i] = DirEntry{
			Name:  e.Name(),
			IsDir: e.IsDir(),
		}
	}
	return result, nil
}

func fromOSInfo(fi os.FileInfo) FileInfo {
	return FileInfo{
		Name:    fi.Name(),
		Mode:    fi.Mode(),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
}
