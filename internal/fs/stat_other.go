//go:build !linux && !darwin && !freebsd && !netbsd && !windows

package fs

import "os"

// statPath reports only the modification time; access and birth times are left
// unreported on platforms without a known source for them.
func statPath(path string) (FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fromOSInfo(fi), nil
}
