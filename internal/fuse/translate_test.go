package fuse

import (
	"syscall"
	"testing"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"

	"github.com/Artem-Goldenberg/RamFS/internal/core"
)

func TestToStatusMapsEveryKind(t *testing.T) {
	cases := []struct {
		kind core.Kind
		want fuse.Status
	}{
		{core.KindNoSuchEntry, fuse.ENOENT},
		{core.KindNotADirectory, fuse.Status(syscall.ENOTDIR)},
		{core.KindIsADirectory, fuse.Status(syscall.EISDIR)},
		{core.KindAlreadyExists, fuse.Status(syscall.EEXIST)},
		{core.KindNotEmpty, fuse.Status(syscall.ENOTEMPTY)},
		{core.KindNotPermitted, fuse.EPERM},
		{core.KindBusy, fuse.Status(syscall.EBUSY)},
		{core.KindInvalidPath, fuse.EINVAL},
		{core.KindBadHandle, fuse.Status(syscall.EBADF)},
		{core.KindOutOfSpace, fuse.Status(syscall.ENOSPC)},
	}

	for _, c := range cases {
		err := &core.Error{Kind: c.kind, Op: "test", Path: "/x"}
		assert.Equal(t, c.want, toStatus(err))
	}
}

func TestToStatusNilIsOK(t *testing.T) {
	assert.Equal(t, fuse.OK, toStatus(nil))
}

func TestToStatusUnknownErrorIsEIO(t *testing.T) {
	assert.Equal(t, fuse.EIO, toStatus(assertError{}))
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

func TestAttrOutCopiesFields(t *testing.T) {
	now := time.Unix(1700000000, 123)
	a := core.Attr{
		Ino: 42, Mode: 0o100644, Uid: 1, Gid: 2, Nlink: 3, Size: 10,
		Atime: now, Mtime: now, Ctime: now,
	}
	var out fuse.Attr
	attrOut(a, &out)

	assert.Equal(t, uint64(42), out.Ino)
	assert.Equal(t, uint64(10), out.Size)
	assert.Equal(t, uint32(0o100644), out.Mode)
	assert.Equal(t, uint32(3), out.Nlink)
	assert.Equal(t, uint32(1), out.Uid)
	assert.Equal(t, uint32(2), out.Gid)
	assert.Equal(t, uint64(now.Unix()), out.Mtime)
}
