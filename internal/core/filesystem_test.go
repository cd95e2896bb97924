package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *Filesystem {
	t.Helper()
	return NewFilesystem(Options{})
}

func TestNewFilesystemRoot(t *testing.T) {
	fs := newTestFS(t)

	root, ok := fs.get(RootIno)
	require.True(t, ok)
	assert.True(t, root.IsDir())
	assert.Equal(t, RootIno, root.Parent)
	assert.Equal(t, uint32(3), root.Nlink)

	entries := root.Dir.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, RootIno, entries[0].Ino)
	assert.Equal(t, "..", entries[1].Name)
	assert.Equal(t, RootIno, entries[1].Ino)
}

// every directory listing begins with "." -> self, ".." -> parent.
func TestDirectoryListingBeginsWithDotAndDotDot(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)

	aIno, err := fs.resolve("test", RootIno, "/a")
	require.NoError(t, err)
	a, ok := fs.get(aIno)
	require.True(t, ok)

	entries := a.Dir.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, aIno, entries[0].Ino)
	assert.Equal(t, "..", entries[1].Name)
	assert.Equal(t, RootIno, entries[1].Ino)
}

func TestDirectoryEntryNamesAreUnique(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)

	_, err = fs.Mknod("/f", 0o644, 0, 0)
	assert.ErrorIs(t, err, KindAlreadyExists)
}

// teardown frees every inode reachable from root, including through
// directories that hold "." and ".." self/parent references.
func TestTeardownFreesAllInodesDespiteCycles(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)
	_, err = fs.Mkdir("/a/b", 0o755, 0, 0)
	require.NoError(t, err)
	_, err = fs.Mknod("/a/b/f", 0o644, 0, 0)
	require.NoError(t, err)

	logger := testLogger()
	fs.Destroy(logger)

	assert.Equal(t, 0, fs.Count())
}
