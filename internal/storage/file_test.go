package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSaveLoadRoundTrip(t *testing.T) {
	backend, err := NewFile(t.TempDir())
	require.NoError(t, err)

	snapshot := map[string][]byte{
		"cc_students":    []byte(`[{"id":"S001"}]`),
		"cc_school_logo": []byte("logo-ref"),
	}
	require.NoError(t, backend.Save(context.Background(), snapshot))

	value, ok, err := backend.Load(context.Background(), "cc_students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"S001"}]`, string(value))

	value, ok, err = backend.Load(context.Background(), "cc_school_logo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "logo-ref", string(value))
}

func TestFileLoadMissingKey(t *testing.T) {
	backend, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, ok, err := backend.Load(context.Background(), "cc_templates")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, backend.Save(context.Background(), map[string][]byte{"cc_events": []byte(`[]`)}))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = os.Stat(filepath.Join(dir, "cc_events.json"))
	require.NoError(t, err)
}

func TestMemorySaveLoad(t *testing.T) {
	backend := NewMemory()

	require.NoError(t, backend.Save(context.Background(), map[string][]byte{"cc_teachers": []byte(`[]`)}))

	value, ok, err := backend.Load(context.Background(), "cc_teachers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(value))

	_, ok, err = backend.Load(context.Background(), "cc_students")
	require.NoError(t, err)
	assert.False(t, ok)
}
