package core

// Unlink detaches a regular file's directory entry. When the inode still
// has outstanding open handles it survives as an orphan: invisible in the
// namespace, still readable/writable through the handles that were
// already open, and freed on the matching Release. A bridge wanting
// busy-on-open-count semantics would apply that policy at its own
// boundary; the core itself always honors the detach.
func (fs *Filesystem) Unlink(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("unlink", RootIno, path)
	if err != nil {
		return err
	}
	n, ok := fs.get(ino)
	if !ok {
		return newErr("unlink", path, KindNoSuchEntry)
	}
	if n.IsDir() {
		return newErr("unlink", path, KindIsADirectory)
	}
	return fs.releaseNode("unlink", path)
}

// Rmdir destroys an empty directory. The root can never be removed.
func (fs *Filesystem) Rmdir(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("rmdir", RootIno, path)
	if err != nil {
		return err
	}
	if ino == RootIno {
		return newErr("rmdir", path, KindBusy)
	}
	n, ok := fs.get(ino)
	if !ok {
		return newErr("rmdir", path, KindNoSuchEntry)
	}
	if !n.IsDir() {
		return newErr("rmdir", path, KindNotADirectory)
	}
	return fs.releaseNode("rmdir", path)
}
