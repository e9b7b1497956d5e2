//go:build linux

package fs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const statxMask = unix.STATX_TYPE | unix.STATX_MODE | unix.STATX_SIZE |
	unix.STATX_ATIME | unix.STATX_MTIME | unix.STATX_BTIME

// statPath uses statx so the birth time comes back in the same call as everything else.
func statPath(path string) (FileInfo, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, statxMask, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return statFallback(path)
	}
	if err != nil {
		return FileInfo{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	info := FileInfo{
		Name: filepath.Base(path),
		Mode: statxMode(stx.Mode),
		Size: int64(stx.Size),
	}
	if stx.Mask&unix.STATX_MTIME != 0 {
		info.ModTime = statxTime(stx.Mtime)
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		info.AccessTime = statxTime(stx.Atime)
	}
	// Filesystems without creation time support clear STATX_BTIME from the mask.
	if stx.Mask&unix.STATX_BTIME != 0 {
		info.BirthTime = statxTime(stx.Btime)
	}
	return info, nil
}

// statFallback serves kernels older than 4.11, which have no statx and no birth time.
func statFallback(path string) (FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	info := fromOSInfo(fi)
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		info.AccessTime = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return info, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

func statxMode(m uint16) os.FileMode {
	mode := os.FileMode(m & 0o777)
	switch uint32(m) & unix.S_IFMT {
	case unix.S_IFDIR:
		mode |= os.ModeDir
	case unix.S_IFLNK:
		mode |= os.ModeSymlink
	case unix.S_IFIFO:
		mode |= os.ModeNamedPipe
	case unix.S_IFSOCK:
		mode |= os.ModeSocket
	case unix.S_IFCHR:
		mode |= os.ModeDevice | os.ModeCharDevice
	case unix.S_IFBLK:
		mode |= os.ModeDevice
	}
	if uint32(m)&unix.S_ISUID != 0 {
		mode |= os.ModeSetuid
	}
	if uint32(m)&unix.S_ISGID != 0 {
		mode |= os.ModeSetgid
	}
	if uint32(m)&unix.S_ISVTX != 0 {
		mode |= os.ModeSticky
	}
	return mode
}
