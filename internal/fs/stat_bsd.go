//go:build darwin || freebsd || netbsd

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

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return info, nil
	}
	info.AccessTime = timespec(st.Atimespec)
	info.BirthTime = timespec(st.Birthtimespec)
	return info, nil
}

// timespec treats an all-zero stamp as unreported.
func timespec(ts syscall.Timespec) time.Time {
	if ts.Sec == 0 && ts.Nsec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(ts.Sec), int64(ts.Nsec))
}
