package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario 6, ino-based: this is the path the FUSE bridge actually calls
// for every rename(2) on a mounted filesystem (it never has a full path,
// only a parent node ID and a name). mv /mnt/a /mnt/a/c reaches RenameAt
// as (oldParentIno=root, oldName="a", newParentIno=ino(a), newName="c");
// it must be rejected the same way the path-based Rename rejects it.
func TestRenameAtIntoDescendantRejected(t *testing.T) {
	fs := newTestFS(t)

	a, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)

	err = fs.RenameAt(RootIno, "a", a.Ino, "c")
	assert.ErrorIs(t, err, KindInvalidPath)

	_, err = fs.Getattr("/a")
	assert.NoError(t, err, "tree must be unchanged after the rejected rename")
}

// renaming an entry onto its own name in the same parent is a harmless
// no-op, not a descendant violation.
func TestRenameAtSameNameIsNoop(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)

	err = fs.RenameAt(RootIno, "a", RootIno, "a")
	assert.NoError(t, err)

	_, err = fs.Getattr("/a")
	assert.NoError(t, err)
}

// a deeper descendant (grandchild) is rejected too, not just a direct child.
func TestRenameAtIntoGrandchildRejected(t *testing.T) {
	fs := newTestFS(t)

	a, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)
	b, err := fs.MkdirAt(a.Ino, "b", 0o755, 0, 0)
	require.NoError(t, err)

	err = fs.RenameAt(RootIno, "a", b.Ino, "c")
	assert.ErrorIs(t, err, KindInvalidPath)
}

// a sibling rename through the ino-based API still succeeds: only
// self/descendant targets are rejected.
func TestRenameAtSiblingSucceeds(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Mkdir("/a", 0o755, 0, 0)
	require.NoError(t, err)
	_, err = fs.Mkdir("/b", 0o755, 0, 0)
	require.NoError(t, err)

	require.NoError(t, fs.RenameAt(RootIno, "a", RootIno, "renamed"))

	_, err = fs.Getattr("/renamed")
	assert.NoError(t, err)
	_, err = fs.Getattr("/a")
	assert.ErrorIs(t, err, KindNoSuchEntry)
}
