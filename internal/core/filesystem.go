// Package core implements the in-memory inode graph: the node model, the
// path resolver, the directory-entry structures, the link/open/unlink
// lifecycle, and recursive teardown. Its only use of go-fuse is taking
// RootIno from fuse.FUSE_ROOT_ID. It is called by the bridge in
// internal/fuse, the seed loader in internal/manifest, and cmd/ramfsd.
package core

import (
	"sync"
	"sync/atomic"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"
)

// RootIno is the well-known inode number of the filesystem root, matching
// go-fuse's convention so the bridge can pass it straight through.
const RootIno Ino = fuse.FUSE_ROOT_ID

// Filesystem owns the root inode and every inode reachable from it. It is
// the handle passed between the bridge and the core. A single coarse
// mutex guards all structural mutation: the bridge already serializes
// requests, so this exists only to survive a multi-threaded bridge
// configuration, not to allow concurrent mutation.
type Filesystem struct {
	mu sync.Mutex

	inodes  *xsync.Map[Ino, *Inode]
	nextIno atomic.Uint64

	defaultFileMode uint32
	defaultDirMode  uint32
	nameMax         int

	handles *handleTable
}

// Options configures a new Filesystem. Zero value uses the package
// defaults (0644 files, 0755 directories, 255-byte names).
type Options struct {
	DefaultFileMode uint32
	DefaultDirMode  uint32
	NameMax         int
}

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
	defaultNameMax  = 255
)

// NewFilesystem allocates a root directory inode with mode directory+full
// permissions, Parent = self, and a listing containing "." -> root and
// ".." -> root. The root's Nlink is initialized so it cannot reach 0
// through normal operations: rmdir("/") is rejected with KindBusy before
// releaseNode is ever reached (see Rmdir).
func NewFilesystem(opts Options) *Filesystem {
	if opts.DefaultFileMode == 0 {
		opts.DefaultFileMode = defaultFileMode
	}
	if opts.DefaultDirMode == 0 {
		opts.DefaultDirMode = defaultDirMode
	}
	if opts.NameMax == 0 {
		opts.NameMax = defaultNameMax
	}

	fs := &Filesystem{
		inodes:          xsync.NewMap[Ino, *Inode](),
		defaultFileMode: opts.DefaultFileMode,
		defaultDirMode:  opts.DefaultDirMode,
		nameMax:         opts.NameMax,
		handles:         newHandleTable(),
	}
	fs.nextIno.Store(uint64(RootIno))

	root := newDirInode(RootIno, opts.DefaultDirMode, 0, 0)
	root.Parent = RootIno
	// The root has no real parent entry to attach through, so its base
	// link count stands in for that "entry in parent" the same way a
	// freshly mkdir'd directory's does; its own "." and ".." then each
	// contribute one more, exactly as appending them to any directory's
	// listing does.
	root.Nlink = 1
	root.Dir.append(".", RootIno)
	root.Nlink++
	root.Dir.append("..", RootIno)
	root.Nlink++

	fs.inodes.Store(RootIno, root)
	return fs
}

func (fs *Filesystem) allocIno() Ino {
	return Ino(fs.nextIno.Add(1))
}

// get returns the inode for ino. Callers must hold fs.mu.
func (fs *Filesystem) get(ino Ino) (*Inode, bool) {
	return fs.inodes.Load(ino)
}

func (fs *Filesystem) store(n *Inode) {
	fs.inodes.Store(n.Ino, n)
}

func (fs *Filesystem) delete(ino Ino) {
	fs.inodes.Delete(ino)
}

// Count reports how many inodes remain allocated; used by tests to assert
// teardown frees everything.
func (fs *Filesystem) Count() int {
	return fs.inodes.Size()
}
