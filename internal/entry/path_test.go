package entry

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixtures use slash-rooted paths")
	}
}

func TestName(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "/tmp/a.txt", want: "a.txt"},
		{path: "/tmp/dir/", want: "dir"},
		{path: "/tmp/dir/.", want: "dir"},
		{path: "relative/file", want: "file"},
		{path: "file", want: "file"},
		{path: "/tmp/Café", want: "Café"},
		{path: "/", wantErr: true},
		{path: "", wantErr: true},
		{path: ".", wantErr: true},
		{path: "/tmp/..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Name(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFileName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParent(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "/a/b/c", want: "/a/b"},
		{path: "/a/b/", want: "/a"},
		{path: "/a", want: "/"},
		{path: "a/b", want: "a"},
		{path: "a", want: ""},
		{path: "/", wantErr: true},
		{path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Parent(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrParentNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAncestors(t *testing.T) {
	skipOnWindows(t)

	got, err := Ancestors("/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/a", "/a/b"}, got)

	got, err = Ancestors("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"/"}, got)

	_, err = Ancestors("a/b")
	assert.ErrorIs(t, err, ErrInvalidFilePath)
}

func TestFileURL(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "/tmp/a.txt", want: "file:///tmp/a.txt"},
		{path: "/", want: "file:///"},
		{path: "/tmp/with space/#1?.txt", want: "file:///tmp/with%20space/%231%3F.txt"},
		{path: "/tmp/café", want: "file:///tmp/caf%C3%A9"},
		{path: "relative/a.txt", wantErr: true},
		{path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FileURL(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilePath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
