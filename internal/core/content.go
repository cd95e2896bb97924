package core

// Open resolves path to a regular file and returns a handle that
// increments the inode's Nopen for the lifetime of the handle.
func (fs *Filesystem) Open(path string) (Handle, Attr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("open", RootIno, path)
	if err != nil {
		return 0, Attr{}, err
	}
	n, ok := fs.get(ino)
	if !ok {
		return 0, Attr{}, newErr("open", path, KindNoSuchEntry)
	}
	if n.IsDir() {
		return 0, Attr{}, newErr("open", path, KindIsADirectory)
	}

	n.Nopen++
	return fs.handles.open(ino), attrOf(n), nil
}

// Read returns up to size bytes from offset. offset+size > file size is
// clamped to the remaining bytes, not an error.
func (fs *Filesystem) Read(h Handle, size int, offset int64) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, ok := fs.handles.lookup(h)
	if !ok {
		return nil, newErr("read", "", KindBadHandle)
	}
	n, ok := fs.get(ino)
	if !ok {
		return nil, newErr("read", "", KindBadHandle)
	}
	if n.IsDir() {
		return nil, newErr("read", "", KindIsADirectory)
	}

	if offset < 0 || offset >= int64(len(n.Data)) {
		return []byte{}, nil
	}
	end := offset + int64(size)
	if end > int64(len(n.Data)) {
		end = int64(len(n.Data))
	}
	out := make([]byte, end-offset)
	copy(out, n.Data[offset:end])
	return out, nil
}

// Write copies buf into the file's content buffer starting at offset,
// growing the buffer (zero-filling any gap between the old size and
// offset) when offset+len(buf) exceeds the current size.
func (fs *Filesystem) Write(h Handle, buf []byte, offset int64) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, ok := fs.handles.lookup(h)
	if !ok {
		return 0, newErr("write", "", KindBadHandle)
	}
	n, ok := fs.get(ino)
	if !ok {
		return 0, newErr("write", "", KindBadHandle)
	}
	if n.IsDir() {
		return 0, newErr("write", "", KindIsADirectory)
	}
	if offset < 0 {
		return 0, newErr("write", "", KindInvalidPath)
	}

	needed := offset + int64(len(buf))
	if needed > int64(len(n.Data)) {
		// make zero-initializes, so the gap between the old size and
		// offset is zero-filled by construction, not left uninitialized.
		grown := make([]byte, needed)
		copy(grown, n.Data)
		n.Data = grown
		n.Size = uint64(needed)
	}

	copy(n.Data[offset:], buf)
	n.touchMtime()
	return len(buf), nil
}

// Truncate resizes the content buffer. Growth is zero-filled;
// truncate(path, 0) frees the content buffer entirely.
func (fs *Filesystem) Truncate(path string, newSize uint64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, err := fs.resolve("truncate", RootIno, path)
	if err != nil {
		return err
	}
	n, ok := fs.get(ino)
	if !ok {
		return newErr("truncate", path, KindNoSuchEntry)
	}
	if n.IsDir() {
		return newErr("truncate", path, KindIsADirectory)
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

// Release decrements Nopen for h. If the inode's Nlink has already
// reached 0 (it was unlinked while still open, the orphan state), the
// last Release destroys it.
func (fs *Filesystem) Release(h Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	ino, ok := fs.handles.close(h)
	if !ok {
		return newErr("release", "", KindBadHandle)
	}
	n, ok := fs.get(ino)
	if !ok {
		// Already destroyed by a concurrent path; nothing left to do.
		return nil
	}
	if n.Nopen == 0 {
		return newErr("release", "", KindBadHandle)
	}
	n.Nopen--
	if n.Nopen == 0 && n.Nlink == 0 {
		n.Data = nil
		fs.delete(n.Ino)
	}
	return nil
}
