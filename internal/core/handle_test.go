package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOnBadHandle(t *testing.T) {
	fs := newTestFS(t)
	_, err := fs.Read(Handle(999), 10, 0)
	assert.ErrorIs(t, err, KindBadHandle)
}

func TestDoubleReleaseFails(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)

	require.NoError(t, fs.Release(h))
	err = fs.Release(h)
	assert.ErrorIs(t, err, KindBadHandle)
}

func TestOpenDirOnFileFails(t *testing.T) {
	fs := newTestFS(t)
	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)

	_, err = fs.OpenDir("/f")
	assert.ErrorIs(t, err, KindNotADirectory)
}

func TestReaddirIncludesDotEntries(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.OpenDir("/")
	require.NoError(t, err)
	entries, err := fs.Readdir(h)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, "..", entries[1].Name)
}
