package core

import "strings"

// validRenamePaths enforces rename's topology rules: newPath must not be
// a descendant of oldPath (a string-prefix check followed by a "/"
// boundary check, not a blanket rejection of any path containing a dot),
// and no segment of either path may be exactly "." or "..".
func validRenamePaths(oldPath, newPath string) bool {
	if strings.HasPrefix(newPath, oldPath) {
		rest := newPath[len(oldPath):]
		if rest == "" || strings.HasPrefix(rest, "/") {
			return false
		}
	}
	for _, p := range []string{oldPath, newPath} {
		for _, seg := range strings.Split(p, "/") {
			if seg == "." || seg == ".." {
				return false
			}
		}
	}
	return true
}

// validRenameIno is validRenamePaths' ino-aware equivalent, used by RenameAt
// where the bridge only ever has a parent node ID and a name, never a full
// path to prefix-check. It walks newParentIno's ".." chain up to the root,
// rejecting the rename if that walk ever reaches the inode named by
// oldName inside oldParentIno: that is exactly the "new location is the
// renamed entry itself, or a descendant of it" case validRenamePaths
// catches via string prefix.
func (fs *Filesystem) validRenameIno(oldParentIno Ino, oldName string, newParentIno Ino, newName string) bool {
	if oldName == "." || oldName == ".." || newName == "." || newName == ".." {
		return false
	}
	oldParent, ok := fs.get(oldParentIno)
	if !ok {
		return false
	}
	targetIno, ok := oldParent.Dir.lookup(oldName)
	if !ok {
		return false
	}

	for ino := newParentIno; ; {
		if ino == targetIno {
			return false
		}
		if ino == RootIno {
			return true
		}
		n, ok := fs.get(ino)
		if !ok {
			return false
		}
		ino = n.Parent
	}
}

// Rename atomically relocates the entry at oldPath to newPath. If newPath
// already names a regular file, it is released first; if it names a
// directory, Rename fails with KindIsADirectory (it will not recursively
// delete a whole directory to make room).
func (fs *Filesystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, err := fs.resolve("rename", RootIno, oldPath); err != nil {
		return err
	}
	if !validRenamePaths(oldPath, newPath) {
		return newErr("rename", newPath, KindInvalidPath)
	}

	if existingIno, err := fs.resolve("rename", RootIno, newPath); err == nil {
		existing, ok := fs.get(existingIno)
		if !ok {
			return newErr("rename", newPath, KindNoSuchEntry)
		}
		if existing.IsDir() {
			return newErr("rename", newPath, KindIsADirectory)
		}
		if err := fs.releaseNode("rename", newPath); err != nil {
			return err
		}
	}

	return fs.moveNode("rename", oldPath, newPath)
}
