package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyPathReturnsStart(t *testing.T) {
	fs := newTestFS(t)

	ino, err := fs.resolve("test", RootIno, "")
	require.NoError(t, err)
	assert.Equal(t, RootIno, ino)
}

func TestResolveLeadingSlashOptional(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)

	withSlash, err := fs.resolve("test", RootIno, "/a")
	require.NoError(t, err)
	withoutSlash, err := fs.resolve("test", RootIno, "a")
	require.NoError(t, err)
	assert.Equal(t, withSlash, withoutSlash)
}

func TestResolveThroughFileNotADirectory(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)

	_, err = fs.resolve("test", RootIno, "/f/x")
	assert.ErrorIs(t, err, KindNotADirectory)
}

func TestResolveNoSuchEntry(t *testing.T) {
	fs := newTestFS(t)
	_, err := fs.resolve("test", RootIno, "/missing")
	assert.ErrorIs(t, err, KindNoSuchEntry)
}

// a stored name that is merely a prefix of the query segment must not
// match (the resolver does an exact, not a prefix, comparison).
func TestResolveDoesNotPrefixMatch(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/file", 0o644, 0, 0)
	require.NoError(t, err)

	_, err = fs.resolve("test", RootIno, "/file.txt")
	assert.ErrorIs(t, err, KindNoSuchEntry)
}

func TestResolveParentRequiresLeadingSlash(t *testing.T) {
	fs := newTestFS(t)
	_, _, err := fs.resolveParent("test", "a/b")
	assert.ErrorIs(t, err, KindInvalidPath)
}

func TestResolveParentRejectsEmptyFilename(t *testing.T) {
	fs := newTestFS(t)
	_, _, err := fs.resolveParent("test", "/a/")
	assert.ErrorIs(t, err, KindNoSuchEntry)
}
