package core

// OpenDir resolves path to a directory and returns a handle for the
// subsequent Readdir/ReleaseDir pair.
func (fs *Filesystem) OpenDir(path string) (Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("opendir", RootIno, path)
	if err != nil {
		return 0, err
	}
	n, ok := fs.get(ino)
	if !ok {
		return 0, newErr("opendir", path, KindNoSuchEntry)
	}
	if !n.IsDir() {
		return 0, newErr("opendir", path, KindNotADirectory)
	}
	return fs.handles.open(ino), nil
}

// Readdir enumerates the entries of the directory handle h, including "."
// and "..".
func (fs *Filesystem) Readdir(h Handle) ([]DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, ok := fs.handles.lookup(h)
	if !ok {
		return nil, newErr("readdir", "", KindBadHandle)
	}
	n, ok := fs.get(ino)
	if !ok {
		return nil, newErr("readdir", "", KindBadHandle)
	}
	if !n.IsDir() {
		return nil, newErr("readdir", "", KindNotADirectory)
	}
	return n.Dir.Entries(), nil
}

// ReleaseDir closes a directory handle opened by OpenDir.
func (fs *Filesystem) ReleaseDir(h Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.handles.close(h); !ok {
		return newErr("releasedir", "", KindBadHandle)
	}
	return nil
}
