package fs

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemFS_StatAndReadDir(t *testing.T) {
	ts := SameTimes(time.UnixMilli(1_700_000_000_000))
	m := NewMemFS().
		AddDir("/root", ts).
		AddFile("/root/b.txt", 3, ts).
		AddDir("/root/a", ts).
		AddSpecial("/root/sock", os.ModeSocket, ts)

	info, err := m.Stat("/root/b.txt")
	require.NoError(t, err)
	assert.True(t, info.IsRegular())
	assert.Equal(t, int64(3), info.Size)
	assert.Equal(t, ts.Birth, info.BirthTime)

	entries, err := m.ReadDir("/root")
	require.NoError(t, err)
	assert.Equal(t, []DirEntry{
		{Name: "b.txt"},
		{Name: "a", IsDir: true},
		{Name: "sock"},
	}, entries)
}

func TestMemFS_Errors(t *testing.T) {
	boom := errors.New("boom")
	m := NewMemFS().
		AddDir("/root", Times{}).
		AddFile("/root/f", 1, Times{}).
		FailOn("/root/bad", boom)

	_, err := m.Stat("/root/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.Stat("/root/bad")
	assert.ErrorIs(t, err, boom)

	_, err = m.ReadDir("/root/f")
	assert.Error(t, err)

	_, err = m.ReadDir("/nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
