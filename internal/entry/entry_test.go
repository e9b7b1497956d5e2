package entry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_JSONFieldNames(t *testing.T) {
	e := Entry{
		DateCreated:    1,
		DateLastOpened: 2,
		DateModified:   3,
		Name:           "a.txt",
		Path:           "/tmp/a.txt",
		Size:           42,
		Type:           TypeFile,
		URL:            "file:///tmp/a.txt",
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{
		"dateCreated":    float64(1),
		"dateLastOpened": float64(2),
		"dateModified":   float64(3),
		"name":           "a.txt",
		"path":           "/tmp/a.txt",
		"size":           float64(42),
		"type":           "file",
		"url":            "file:///tmp/a.txt",
	}, raw)
}

func TestEntry_DirectoryType(t *testing.T) {
	data, err := json.Marshal(Entry{Type: TypeDirectory})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"directory"`)
}

func TestEntry_RoundTrip(t *testing.T) {
	fsys, paths := newFixture(t)
	r := NewResolver(fsys)

	original, err := r.Get(t.Context(), paths.readme)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestType_UnmarshalUnknown(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"type":"symlink"}`), &e)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEntryType)
}

func TestType_MarshalUnknown(t *testing.T) {
	_, err := json.Marshal(Entry{Type: Type(7)})
	assert.Error(t, err)
}

func TestNode_FlattensEntry(t *testing.T) {
	n := Node{
		Entry:    Entry{Name: "/", Path: "/", Type: TypeDirectory, URL: "file:///"},
		Children: []*Node{{Entry: Entry{Name: "a", Path: "/a", Type: TypeFile}}},
	}
	data, err := json.Marshal(n)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "directory", raw["type"])
	children, ok := raw["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	_, hasChildren := children[0].(map[string]any)["children"]
	assert.False(t, hasChildren)
}
