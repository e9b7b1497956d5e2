package entry

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var epoch = time.Unix(0, 0)

// splitPath breaks p into its volume, whether it is rooted, and its components.
// Empty components and "." after the first position are dropped.
func splitPath(p string) (vol string, rooted bool, parts []string) {
	vol = filepath.VolumeName(p)
	rest := filepath.ToSlash(p[len(vol):])
	rooted = strings.HasPrefix(rest, "/")
	for i, c := range strings.Split(rest, "/") {
		if c == "" || (c == "." && i > 0) {
			continue
		}
		parts = append(parts, c)
	}
	return vol, rooted, parts
}

func joinPath(vol string, rooted bool, parts []string) string {
	var b strings.Builder
	b.WriteString(vol)
	if rooted {
		b.WriteRune(filepath.Separator)
	}
	b.WriteString(strings.Join(parts, string(filepath.Separator)))
	return b.String()
}

// Name returns the final component of p, NFC-normalised.
func Name(p string) (string, error) {
	_, _, parts := splitPath(p)
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, p)
	}
	last := parts[len(parts)-1]
	if last == "." || last == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, p)
	}
	return norm.NFC.String(last), nil
}

// Parent returns the parent of p. A filesystem root or the empty path has none.
// A single relative component has the empty path as its parent.
func Parent(p string) (string, error) {
	vol, rooted, parts := splitPath(p)
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %q", ErrParentNotFound, p)
	}
	return joinPath(vol, rooted, parts[:len(parts)-1]), nil
}

// Ancestors returns p and every directory above it, starting at the root.
// p must be absolute.
func Ancestors(p string) ([]string, error) {
	if !filepath.IsAbs(p) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilePath, p)
	}
	vol, rooted, parts := splitPath(p)
	result := make([]string, 0, len(parts)+1)
	for i := 0; i <= len(parts); i++ {
		result = append(result, joinPath(vol, rooted, parts[:i]))
	}
	return result, nil
}

// FileURL builds a file:// URL for the absolute path p.
func FileURL(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilePath, p)
	}
	vol, _, parts := splitPath(p)

	u := url.URL{Scheme: "file"}
	var b strings.Builder
	if strings.HasPrefix(vol, `\\`) || strings.HasPrefix(vol, "//") {
		// UNC volume: \\host\share
		hostShare := strings.SplitN(filepath.ToSlash(vol)[2:], "/", 2)
		u.Host = hostShare[0]
		if len(hostShare) > 1 {
			b.WriteString("/" + hostShare[1])
		}
	} else if vol != "" {
		b.WriteString("/" + vol)
	}
	for _, part := range parts {
		b.WriteString("/" + part)
	}
	if len(parts) == 0 {
		b.WriteString("/")
	}
	u.Path = b.String()
	return u.String(), nil
}

// millis converts t to milliseconds since the epoch. Unreported and pre-epoch
// stamps are rejected.
func millis(t time.Time) (int64, error) {
	if t.IsZero() || t.Before(epoch) {
		return 0, ErrInvalidFileTime
	}
	return t.UnixMilli(), nil
}
