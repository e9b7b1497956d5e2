//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func statPath(path string) (FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	info := fromOSInfo(fi)

	attrs, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info, nil
	}
	info.AccessTime = time.Unix(0, attrs.LastAccessTime.Nanoseconds())
	info.BirthTime = time.Unix(0, attrs.CreationTime.Nanoseconds())
	return info, nil
}
