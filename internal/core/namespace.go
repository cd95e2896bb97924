package core

// addNode attaches an existing inode at path. Caller holds fs.mu.
//
//  1. Resolve the parent directory of path.
//  2. If the filename already exists in the parent, fail KindAlreadyExists.
//  3. Append a new entry (filename, node) to the parent's listing.
//  4. Increment node.Nlink.
//  5. If node.Parent is unset, set it to the parent directory (the first
//     directory that receives this node becomes its canonical parent;
//     later hard links do not move Parent).
func (fs *Filesystem) addNode(op, path string, node *Inode) error {
	parentIno, name, err := fs.resolveParent(op, path)
	if err != nil {
		return err
	}
	return fs.addNodeAt(op, parentIno, name, node)
}

// addNodeAt is addNode's logic once the parent inode and filename are
// already known, shared with the bridge's ino+name-based entry points
// (FUSE hands the bridge a parent node ID and a name, never a full path).
func (fs *Filesystem) addNodeAt(op string, parentIno Ino, name string, node *Inode) error {
	if len(name) > fs.nameMax {
		return newErr(op, name, KindInvalidPath)
	}
	parent, ok := fs.get(parentIno)
	if !ok {
		return newErr(op, name, KindNoSuchEntry)
	}
	if !parent.IsDir() {
		return newErr(op, name, KindNotADirectory)
	}
	if _, exists := parent.Dir.lookup(name); exists {
		return newErr(op, name, KindAlreadyExists)
	}

	parent.Dir.append(name, node.Ino)
	node.Nlink++
	if node.Parent == NoIno {
		node.Parent = parentIno
	}
	return nil
}

// moveNode atomically relocates an inode from oldPath to newPath. Nlink is
// conserved; the parent pointer is not updated, since it only ever backs
// a directory's "..", and directories can never be hard-linked.
func (fs *Filesystem) moveNode(op, oldPath, newPath string) error {
	oldParentIno, oldName, err := fs.resolveParent(op, oldPath)
	if err != nil {
		return err
	}
	newParentIno, newName, err := fs.resolveParent(op, newPath)
	if err != nil {
		return err
	}
	return fs.moveNodeAt(op, oldParentIno, oldName, newParentIno, newName)
}

func (fs *Filesystem) moveNodeAt(op string, oldParentIno Ino, oldName string, newParentIno Ino, newName string) error {
	if len(newName) > fs.nameMax {
		return newErr(op, newName, KindInvalidPath)
	}
	oldParent, ok := fs.get(oldParentIno)
	if !ok || !oldParent.IsDir() {
		return newErr(op, oldName, KindNotADirectory)
	}
	newParent, ok := fs.get(newParentIno)
	if !ok || !newParent.IsDir() {
		return newErr(op, newName, KindNotADirectory)
	}

	ino, ok := oldParent.Dir.remove(oldName)
	if !ok {
		return newErr(op, oldName, KindNoSuchEntry)
	}
	newParent.Dir.append(newName, ino)
	return nil
}

// releaseNode detaches the entry at path and, if the referenced inode
// becomes unreferenced, destroys it.
//
//  1. Resolve the parent directory and filename.
//  2. Look up the target inode.
//  3. If it is a directory: require it empty; remove its ".." entry and
//     decrement the parent's Nlink by 1 to cancel that back-reference;
//     free the listing and the directory inode.
//  4. If it is a regular file: decrement Nlink; if Nlink == 0 && Nopen ==
//     0, free its content buffer and the inode.
//  5. Remove the named entry from the parent listing.
func (fs *Filesystem) releaseNode(op, path string) error {
	parentIno, name, err := fs.resolveParent(op, path)
	if err != nil {
		return err
	}
	return fs.releaseNodeAt(op, parentIno, name)
}

func (fs *Filesystem) releaseNodeAt(op string, parentIno Ino, name string) error {
	parent, ok := fs.get(parentIno)
	if !ok || !parent.IsDir() {
		return newErr(op, name, KindNotADirectory)
	}
	targetIno, ok := parent.Dir.lookup(name)
	if !ok {
		return newErr(op, name, KindNoSuchEntry)
	}
	target, ok := fs.get(targetIno)
	if !ok {
		return newErr(op, name, KindNoSuchEntry)
	}

	if target.IsDir() {
		if !target.Dir.isEmpty() {
			return newErr(op, name, KindNotEmpty)
		}
		target.Dir.remove("..")
		parent.Nlink--
		fs.delete(target.Ino)
	} else {
		target.Nlink--
		if target.Nlink == 0 && target.Nopen == 0 {
			target.Data = nil
			fs.delete(target.Ino)
		}
	}

	parent.Dir.remove(name)
	return nil
}
