package core

// Mknod creates a new regular-file inode and attaches it at path.
func (fs *Filesystem) Mknod(path string, mode, uid, gid uint32) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := newFileInode(fs.allocIno(), mode, uid, gid)
	if err := fs.addNode("mknod", path, node); err != nil {
		return Attr{}, err
	}
	fs.store(node)
	return attrOf(node), nil
}

// Mkdir creates a new directory inode, with "." and ".." attached, and
// links it into its parent.
func (fs *Filesystem) Mkdir(path string, mode, uid, gid uint32) (Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := newDirInode(fs.allocIno(), mode, uid, gid)
	if err := fs.addNode("mkdir", path, node); err != nil {
		return Attr{}, err
	}

	parent, ok := fs.get(node.Parent)
	if !ok {
		return Attr{}, newErr("mkdir", path, KindNoSuchEntry)
	}
	node.Dir.append(".", node.Ino)
	node.Nlink++
	node.Dir.append("..", parent.Ino)
	parent.Nlink++

	fs.store(node)
	return attrOf(node), nil
}
