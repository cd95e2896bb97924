package core

// The bridge never holds full paths: FUSE hands it a parent node ID and a
// name per request. These entry points take that shape directly instead of
// making the bridge reconstruct a path to hand to the path-based API
// (create.go, link.go, remove.go, rename.go), mirroring what each of those
// ops already reduces to internally once resolveParent has run.

// LookupChild resolves name inside the directory parentIno.
func (fs *Filesystem) LookupChild(parentIno Ino, name string) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("lookup", parentIno, name)
	if err != nil {
		return Attr{}, err
	}
	n, ok := fs.get(ino)
	if !ok {
		return Attr{}, newErr("lookup", name, KindNoSuchEntry)
	}
	return attrOf(n), nil
}

// MknodAt creates a regular file named name inside parentIno.
func (fs *Filesystem) MknodAt(parentIno Ino, name string, mode, uid, gid uint32) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := newFileInode(fs.allocIno(), mode, uid, gid)
	if err := fs.addNodeAt("mknod", parentIno, name, node); err != nil {
		return Attr{}, err
	}
	fs.store(node)
	return attrOf(node), nil
}

// MkdirAt creates a directory named name inside parentIno.
func (fs *Filesystem) MkdirAt(parentIno Ino, name string, mode, uid, gid uint32) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := newDirInode(fs.allocIno(), mode, uid, gid)
	if err := fs.addNodeAt("mkdir", parentIno, name, node); err != nil {
		return Attr{}, err
	}

	parent, ok := fs.get(parentIno)
	if !ok {
		return Attr{}, newErr("mkdir", name, KindNoSuchEntry)
	}
	node.Dir.append(".", node.Ino)
	node.Nlink++
	node.Dir.append("..", parent.Ino)
	parent.Nlink++

	fs.store(node)
	return attrOf(node), nil
}

// LinkAt creates a new entry named name inside parentIno referring to the
// same inode as existingIno. Hard-linking a directory is disallowed.
func (fs *Filesystem) LinkAt(parentIno Ino, name string, existingIno Ino) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node, ok := fs.get(existingIno)
	if !ok {
		return Attr{}, newErr("link", name, KindNoSuchEntry)
	}
	if node.IsDir() {
		return Attr{}, newErr("link", name, KindNotPermitted)
	}
	if err := fs.addNodeAt("link", parentIno, name, node); err != nil {
		return Attr{}, err
	}
	return attrOf(node), nil
}

// UnlinkAt detaches the regular-file entry named name inside parentIno.
func (fs *Filesystem) UnlinkAt(parentIno Ino, name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, ok := fs.get(parentIno)
	if !ok || !parent.IsDir() {
		return newErr("unlink", name, KindNotADirectory)
	}
	targetIno, ok := parent.Dir.lookup(name)
	if !ok {
		return newErr("unlink", name, KindNoSuchEntry)
	}
	target, ok := fs.get(targetIno)
	if !ok {
		return newErr("unlink", name, KindNoSuchEntry)
	}
	if target.IsDir() {
		return newErr("unlink", name, KindIsADirectory)
	}
	return fs.releaseNodeAt("unlink", parentIno, name)
}

// RmdirAt destroys the empty directory named name inside parentIno.
func (fs *Filesystem) RmdirAt(parentIno Ino, name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, ok := fs.get(parentIno)
	if !ok || !parent.IsDir() {
		return newErr("rmdir", name, KindNotADirectory)
	}
	targetIno, ok := parent.Dir.lookup(name)
	if !ok {
		return newErr("rmdir", name, KindNoSuchEntry)
	}
	if targetIno == RootIno {
		return newErr("rmdir", name, KindBusy)
	}
	target, ok := fs.get(targetIno)
	if !ok {
		return newErr("rmdir", name, KindNoSuchEntry)
	}
	if !target.IsDir() {
		return newErr("rmdir", name, KindNotADirectory)
	}
	return fs.releaseNodeAt("rmdir", parentIno, name)
}

// OpenIno opens the regular file at ino for reading/writing, mirroring
// Open but starting from an already-resolved inode rather than a path.
func (fs *Filesystem) OpenIno(ino Ino) (Handle, Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.get(ino)
	if !ok {
		return 0, Attr{}, newErr("open", "", KindNoSuchEntry)
	}
	if n.IsDir() {
		return 0, Attr{}, newErr("open", "", KindIsADirectory)
	}
	n.Nopen++
	return fs.handles.open(ino), attrOf(n), nil
}

// OpenDirIno opens the directory at ino for a Readdir/ReleaseDir pair.
func (fs *Filesystem) OpenDirIno(ino Ino) (Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.get(ino)
	if !ok {
		return 0, newErr("opendir", "", KindNoSuchEntry)
	}
	if !n.IsDir() {
		return 0, newErr("opendir", "", KindNotADirectory)
	}
	return fs.handles.open(ino), nil
}

// TruncateIno resizes the content buffer at ino, mirroring Truncate but
// starting from an already-resolved inode rather than a path.
func (fs *Filesystem) TruncateIno(ino Ino, newSize uint64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.get(ino)
	if !ok {
		return newErr("truncate", "", KindNoSuchEntry)
	}
	if n.IsDir() {
		return newErr("truncate", "", KindIsADirectory)
	}

	if newSize == 0 {
		n.Data = nil
		n.Size = 0
		n.touchMtime()
		return nil
	}

	grown := make([]byte, newSize)
	copy(grown, n.Data)
	n.Data = grown
	n.Size = newSize
	n.touchMtime()
	return nil
}

// RenameAt moves the entry named oldName inside oldParentIno to newName
// inside newParentIno, applying the same topology and overwrite rules as
// the path-based Rename. When newName already refers to the same inode as
// oldName (including renaming an entry onto its own name), RenameAt
// succeeds without changing anything; the path-based Rename instead
// rejects an identical old and new path with KindInvalidPath.
func (fs *Filesystem) RenameAt(oldParentIno Ino, oldName string, newParentIno Ino, newName string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	oldParent, ok := fs.get(oldParentIno)
	if !ok || !oldParent.IsDir() {
		return newErr("rename", oldName, KindNotADirectory)
	}
	targetIno, ok := oldParent.Dir.lookup(oldName)
	if !ok {
		return newErr("rename", oldName, KindNoSuchEntry)
	}

	newParent, ok := fs.get(newParentIno)
	if !ok || !newParent.IsDir() {
		return newErr("rename", newName, KindNotADirectory)
	}
	if !fs.validRenameIno(oldParentIno, oldName, newParentIno, newName) {
		return newErr("rename", newName, KindInvalidPath)
	}
	if existingIno, ok := newParent.Dir.lookup(newName); ok {
		if existingIno == targetIno {
			return nil
		}
		existing, ok := fs.get(existingIno)
		if !ok {
			return newErr("rename", newName, KindNoSuchEntry)
		}
		if existing.IsDir() {
			return newErr("rename", newName, KindIsADirectory)
		}
		if err := fs.releaseNodeAt("rename", newParentIno, newName); err != nil {
			return err
		}
	}

	return fs.moveNodeAt("rename", oldParentIno, oldName, newParentIno, newName)
}
