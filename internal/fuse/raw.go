// Package fuse bridges kernel FUSE requests to internal/core operations. It
// holds no filesystem state of its own: every request resolves straight
// through to a *core.Filesystem call keyed by the FUSE node ID, which is
// the same stable core.Ino the arena already assigned (core.RootIno is
// defined to equal fuse.FUSE_ROOT_ID for exactly this reason), so there is
// no separate node-ID registry to maintain.
package fuse

import (
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/rs/zerolog"

	"github.com/Artem-Goldenberg/RamFS/internal/core"
	"github.com/Artem-Goldenberg/RamFS/internal/util"
)

// RawFS implements the low-level FUSE wire protocol as a thin protocol
// adapter in front of the core filesystem.
type RawFS struct {
	fuse.RawFileSystem
	fs        *core.Filesystem
	sessionID string
	server    *fuse.Server
}

// NewRawFS wraps fs for serving over FUSE. sessionID tags every bridge-level
// log line so concurrent mounts in the same process are distinguishable.
func NewRawFS(fs *core.Filesystem, sessionID string) *RawFS {
	return &RawFS{
		RawFileSystem: fuse.NewDefaultRawFileSystem(),
		fs:            fs,
		sessionID:     sessionID,
	}
}

func (r *RawFS) log(component string) *zerolog.Logger {
	logger := util.GetLogger(component).With().Str("session", r.sessionID).Logger()
	return &logger
}

func (r *RawFS) Init(s *fuse.Server) {
	r.server = s
	r.log("fuse.Init").Debug().Msg("fuse initialized")
}

func (r *RawFS) OnUnmount() {
	r.log("fuse.OnUnmount").Info().Msg("fuse unmounted")
}

func (r *RawFS) String() string {
	return "ramfs"
}

// Access always grants access; permission enforcement beyond storing
// mode/uid/gid is out of scope.
func (r *RawFS) Access(cancel <-chan struct{}, input *fuse.AccessIn) fuse.Status {
	return fuse.OK
}

func (r *RawFS) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	attr, err := r.fs.LookupChild(core.Ino(header.NodeId), name)
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.NodeId = uint64(attr.Ino)
	out.SetAttrTimeout(attrTimeout)
	out.SetEntryTimeout(entryTimeout)
	return fuse.OK
}

// Forget drops the kernel's dentry cache entry. The arena's own lifetime
// is governed by Nlink/Nopen, not by kernel lookup counts, so there is
// nothing to release here.
func (r *RawFS) Forget(nodeid, nlookup uint64) {}

func (r *RawFS) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	attr, err := r.fs.GetattrIno(core.Ino(input.NodeId))
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.SetTimeout(attrTimeout)
	return fuse.OK
}

// SetAttr only honors size changes (truncate); mode/uid/gid/time changes
// are accepted but not stored beyond what the inode already carries,
// matching the stated non-goal of permission enforcement.
func (r *RawFS) SetAttr(cancel <-chan struct{}, input *fuse.SetAttrIn, out *fuse.AttrOut) fuse.Status {
	ino := core.Ino(input.NodeId)
	if input.Valid&fuse.FATTR_SIZE != 0 {
		if err := r.fs.TruncateIno(ino, input.Size); err != nil {
			return toStatus(err)
		}
	}
	attr, err := r.fs.GetattrIno(ino)
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.SetTimeout(attrTimeout)
	return fuse.OK
}

func (r *RawFS) Mknod(cancel <-chan struct{}, input *fuse.MknodIn, name string, out *fuse.EntryOut) fuse.Status {
	attr, err := r.fs.MknodAt(core.Ino(input.NodeId), name, input.Mode, input.Uid, input.Gid)
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.NodeId = uint64(attr.Ino)
	out.SetAttrTimeout(attrTimeout)
	out.SetEntryTimeout(entryTimeout)
	return fuse.OK
}

func (r *RawFS) Mkdir(cancel <-chan struct{}, input *fuse.MkdirIn, name string, out *fuse.EntryOut) fuse.Status {
	attr, err := r.fs.MkdirAt(core.Ino(input.NodeId), name, input.Mode, input.Uid, input.Gid)
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.NodeId = uint64(attr.Ino)
	out.SetAttrTimeout(attrTimeout)
	out.SetEntryTimeout(entryTimeout)
	return fuse.OK
}

func (r *RawFS) Unlink(cancel <-chan struct{}, header *fuse.InHeader, name string) fuse.Status {
	return toStatus(r.fs.UnlinkAt(core.Ino(header.NodeId), name))
}

func (r *RawFS) Rmdir(cancel <-chan struct{}, header *fuse.InHeader, name string) fuse.Status {
	return toStatus(r.fs.RmdirAt(core.Ino(header.NodeId), name))
}

func (r *RawFS) Rename(cancel <-chan struct{}, input *fuse.RenameIn, oldName string, newName string) fuse.Status {
	return toStatus(r.fs.RenameAt(core.Ino(input.NodeId), oldName, core.Ino(input.Newdir), newName))
}

func (r *RawFS) Link(cancel <-chan struct{}, input *fuse.LinkIn, name string, out *fuse.EntryOut) fuse.Status {
	attr, err := r.fs.LinkAt(core.Ino(input.NodeId), name, core.Ino(input.Oldnodeid))
	if err != nil {
		return toStatus(err)
	}
	attrOut(attr, &out.Attr)
	out.NodeId = uint64(attr.Ino)
	out.SetAttrTimeout(attrTimeout)
	out.SetEntryTimeout(entryTimeout)
	return fuse.OK
}

func (r *RawFS) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	h, _, err := r.fs.OpenIno(core.Ino(input.NodeId))
	if err != nil {
		return toStatus(err)
	}
	out.Fh = uint64(h)
	return fuse.OK
}

func (r *RawFS) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	data, err := r.fs.Read(core.Handle(input.Fh), len(buf), int64(input.Offset))
	if err != nil {
		return nil, toStatus(err)
	}
	return fuse.ReadResultData(data), fuse.OK
}

func (r *RawFS) Write(cancel <-chan struct{}, input *fuse.WriteIn, data []byte) (uint32, fuse.Status) {
	n, err := r.fs.Write(core.Handle(input.Fh), data, int64(input.Offset))
	if err != nil {
		return 0, toStatus(err)
	}
	return uint32(n), fuse.OK
}

func (r *RawFS) Release(cancel <-chan struct{}, input *fuse.ReleaseIn) {
	if err := r.fs.Release(core.Handle(input.Fh)); err != nil {
		r.log("fuse.Release").Warn().Err(err).Msg("release on handle failed")
	}
}

func (r *RawFS) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	h, err := r.fs.OpenDirIno(core.Ino(input.NodeId))
	if err != nil {
		return toStatus(err)
	}
	out.Fh = uint64(h)
	return fuse.OK
}

func (r *RawFS) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	return r.readdir(input, out, false)
}

func (r *RawFS) ReadDirPlus(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	return r.readdir(input, out, true)
}

func (r *RawFS) readdir(input *fuse.ReadIn, out *fuse.DirEntryList, plus bool) fuse.Status {
	entries, err := r.fs.Readdir(core.Handle(input.Fh))
	if err != nil {
		return toStatus(err)
	}
	for i, e := range entries {
		if uint64(i) < input.Offset {
			continue
		}
		mode := uint32(syscall.S_IFREG)
		if attr, err := r.fs.GetattrIno(e.Ino); err == nil {
			mode = attr.Mode
		}
		entry := fuse.DirEntry{Name: e.Name, Ino: uint64(e.Ino), Mode: mode}
		var added bool
		if plus {
			eOut := out.AddDirLookupEntry(entry)
			added = eOut != nil
			if added {
				if attr, err := r.fs.GetattrIno(e.Ino); err == nil {
					attrOut(attr, &eOut.Attr)
					eOut.NodeId = uint64(e.Ino)
					eOut.SetAttrTimeout(attrTimeout)
					eOut.SetEntryTimeout(entryTimeout)
				}
			}
		} else {
			added = out.AddDirEntry(entry)
		}
		if !added {
			return fuse.OK
		}
	}
	return fuse.OK
}

func (r *RawFS) ReleaseDir(input *fuse.ReleaseIn) {
	if err := r.fs.ReleaseDir(core.Handle(input.Fh)); err != nil {
		r.log("fuse.ReleaseDir").Warn().Err(err).Msg("releasedir on handle failed")
	}
}

const (
	attrTimeout  = 1.0
	entryTimeout = 1.0
)
