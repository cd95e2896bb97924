package core

import "github.com/rs/zerolog"

// teardown destroys the entire graph rooted at ino without re-entering
// already-visited directories. "." and ".." entries recurse into the
// directory itself or its parent and hit the traversing guard, which is
// what makes this safe despite the graph containing cycles.
func (fs *Filesystem) teardown(logger zerolog.Logger, ino Ino) {
	n, ok := fs.get(ino)
	if !ok {
		return
	}

	n.Nlink--
	if n.traversing {
		return
	}
	n.traversing = true

	if n.Nopen > 0 {
		logger.Warn().Uint64("ino", uint64(n.Ino)).Msg("tearing down inode with open handles")
	}

	if n.IsDir() {
		for _, e := range n.Dir.Entries() {
			fs.teardown(logger, e.Ino)
		}
		n.Dir = nil
	}

	n.traversing = false
	if n.Nlink == 0 {
		n.Data = nil
		fs.delete(n.Ino)
	}
}

// Destroy tears down the whole graph, called once at shutdown.
func (fs *Filesystem) Destroy(logger zerolog.Logger) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.teardown(logger, RootIno)
}
