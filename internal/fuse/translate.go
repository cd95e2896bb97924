package fuse

import (
	"errors"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/Artem-Goldenberg/RamFS/internal/core"
)

// toStatus translates a core.Kind into the matching host error code. Every
// Kind in internal/core/errors.go has exactly one entry here.
func toStatus(err error) fuse.Status {
	if err == nil {
		return fuse.OK
	}
	var ce *core.Error
	if !errors.As(err, &ce) {
		return fuse.EIO
	}
	switch ce.Kind {
	case core.KindNoSuchEntry:
		return fuse.ENOENT
	case core.KindNotADirectory:
		return fuse.Status(syscall.ENOTDIR)
	case core.KindIsADirectory:
		return fuse.Status(syscall.EISDIR)
	case core.KindAlreadyExists:
		return fuse.Status(syscall.EEXIST)
	case core.KindNotEmpty:
		return fuse.Status(syscall.ENOTEMPTY)
	case core.KindNotPermitted:
		return fuse.EPERM
	case core.KindBusy:
		return fuse.Status(syscall.EBUSY)
	case core.KindInvalidPath:
		return fuse.EINVAL
	case core.KindBadHandle:
		return fuse.Status(syscall.EBADF)
	case core.KindOutOfSpace:
		return fuse.Status(syscall.ENOSPC)
	default:
		return fuse.EIO
	}
}

// attrOut fills out's Attr from a core.Attr snapshot.
func attrOut(a core.Attr, out *fuse.Attr) {
	out.Ino = uint64(a.Ino)
	out.Size = a.Size
	out.Mode = a.Mode
	out.Nlink = a.Nlink
	out.Uid = a.Uid
	out.Gid = a.Gid
	out.Atime = uint64(a.Atime.Unix())
	out.Mtime = uint64(a.Mtime.Unix())
	out.Ctime = uint64(a.Ctime.Unix())
	out.Atimensec = uint32(a.Atime.Nanosecond())
	out.Mtimensec = uint32(a.Mtime.Nanosecond())
	out.Ctimensec = uint32(a.Ctime.Nanosecond())
	if a.Mode&syscall.S_IFMT == syscall.S_IFDIR {
		out.Blksize = 4096
	}
}
