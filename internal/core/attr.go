package core

import "time"

// Attr is the snapshot of an inode's metadata returned by Getattr and used
// by the bridge to answer FUSE attribute requests.
type Attr struct {
	Ino   Ino
	Mode  uint32
	Uid   uint32
	Gid   uint32
	Nlink uint32
	Size  uint64

	Atime, Mtime, Ctime time.Time
}

func attrOf(n *Inode) Attr {
	return Attr{
		Ino:   n.Ino,
		Mode:  n.Mode,
		Uid:   n.Uid,
		Gid:   n.Gid,
		Nlink: n.Nlink,
		Size:  n.Size,
		Atime: n.Atime,
		Mtime: n.Mtime,
		Ctime: n.Ctime,
	}
}

// Getattr resolves path and returns a snapshot of the inode's attributes.
func (fs *Filesystem) Getattr(path string) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("getattr", RootIno, path)
	if err != nil {
		return Attr{}, err
	}
	n, ok := fs.get(ino)
	if !ok {
		return Attr{}, newErr("getattr", path, KindNoSuchEntry)
	}
	return attrOf(n), nil
}

// GetattrIno is Getattr by arena Ino, used by the bridge wherever it only
// has a FUSE node ID on hand rather than a resolved path.
func (fs *Filesystem) GetattrIno(ino Ino) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.get(ino)
	if !ok {
		return Attr{}, newErr("getattr", "", KindNoSuchEntry)
	}
	return attrOf(n), nil
}
