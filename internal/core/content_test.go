package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// round-trip law: mknod(p); getattr(p) returns the mode/uid/gid just
// written.
func TestMknodGetattrRoundTrip(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o640, 7, 9)
	require.NoError(t, err)

	attr, err := fs.Getattr("/f")
	require.NoError(t, err)
	assert.Equal(t, uint32(0o640), attr.Mode&0o777)
	assert.Equal(t, uint32(7), attr.Uid)
	assert.Equal(t, uint32(9), attr.Gid)
}

// round-trip law: write(h, buf, 0); read(h, size=|buf|, 0) returns buf.
func TestWriteReadRoundTrip(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)

	buf := []byte("hello world")
	n, err := fs.Write(h, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	got, err := fs.Read(h, len(buf), 0)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

// read with offset+size > file.size is clamped, not an error.
func TestReadClampsPastEOF(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)

	_, err = fs.Write(h, []byte("abc"), 0)
	require.NoError(t, err)

	got, err := fs.Read(h, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("bc"), got)
}

// write at offset > file.size zero-fills the gap.
func TestWriteZeroFillsGap(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)

	_, err = fs.Write(h, []byte("ab"), 5)
	require.NoError(t, err)

	got, err := fs.Read(h, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 'a', 'b'}, got)
}

// truncate(p, 0) frees the content buffer.
func TestTruncateToZeroFreesBuffer(t *testing.T) {
	fs := newTestFS(t)

	attr, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("hello"), 0)
	require.NoError(t, err)

	require.NoError(t, fs.Truncate("/f", 0))

	n, ok := fs.get(attr.Ino)
	require.True(t, ok)
	assert.Nil(t, n.Data)
	assert.Equal(t, uint64(0), n.Size)
}

// scenario 4: truncate shrinks visible content.
func TestScenarioTruncateShrinksContent(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("hello"), 0)
	require.NoError(t, err)

	require.NoError(t, fs.Truncate("/f", 2))

	got, err := fs.Read(h, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("he"), got)
}

// scenario 2: unlinking a file with an open handle detaches the name but
// preserves content for the existing handle; release destroys the inode.
func TestScenarioUnlinkWhileOpen(t *testing.T) {
	fs := newTestFS(t)

	attr, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)

	require.NoError(t, fs.Unlink("/f"))

	_, err = fs.Getattr("/f")
	assert.ErrorIs(t, err, KindNoSuchEntry)

	n, err := fs.Write(h, []byte("xy"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := fs.Read(h, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("xy"), got)

	require.NoError(t, fs.Release(h))
	_, ok := fs.get(attr.Ino)
	assert.False(t, ok, "orphaned inode must be destroyed on its last release")
}

// scenario 3: a hard link keeps content reachable after the original name
// is unlinked, and nlink reflects the surviving entry.
func TestScenarioLinkSurvivesUnlinkOfOriginal(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mknod("/f", 0o644, 0, 0)
	require.NoError(t, err)
	h, _, err := fs.Open("/f")
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("payload"), 0)
	require.NoError(t, err)
	require.NoError(t, fs.Release(h))

	_, err = fs.Link("/f", "/g")
	require.NoError(t, err)
	require.NoError(t, fs.Unlink("/f"))

	gAttr, err := fs.Getattr("/g")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), gAttr.Nlink)

	gh, _, err := fs.Open("/g")
	require.NoError(t, err)
	got, err := fs.Read(gh, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}
