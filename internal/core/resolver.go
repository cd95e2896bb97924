package core

import "strings"

// resolve walks a slash-separated path from startIno to the inode it
// names. Leading "/" is optional and consumed if present; an empty
// remainder returns startIno itself. Lookup against "." and ".." falls
// out of the listing naturally since both are present as entries.
func (fs *Filesystem) resolve(op string, startIno Ino, path string) (Ino, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return startIno, nil
	}

	cur := startIno
	for _, seg := range strings.Split(path, "/") {
		n, ok := fs.get(cur)
		if !ok {
			return NoIno, newErr(op, path, KindNoSuchEntry)
		}
		if !n.IsDir() {
			return NoIno, newErr(op, path, KindNotADirectory)
		}
		next, ok := n.Dir.lookup(seg)
		if !ok {
			return NoIno, newErr(op, path, KindNoSuchEntry)
		}
		cur = next
	}
	return cur, nil
}

// resolveParent splits path on its final "/": the prefix (empty means
// root) is resolved with resolve, the suffix is the name. Fails with
// KindInvalidPath if path does not begin with "/", KindNoSuchEntry if path
// is empty or has an empty filename.
func (fs *Filesystem) resolveParent(op, path string) (Ino, string, error) {
	if path == "" {
		return NoIno, "", newErr(op, path, KindNoSuchEntry)
	}
	if !strings.HasPrefix(path, "/") {
		return NoIno, "", newErr(op, path, KindInvalidPath)
	}

	idx := strings.LastIndex(path, "/")
	dir := path[:idx]
	name := path[idx+1:]
	if name == "" {
		return NoIno, "", newErr(op, path, KindNoSuchEntry)
	}

	parent, err := fs.resolve(op, RootIno, dir)
	if err != nil {
		return NoIno, "", err
	}
	return parent, name, nil
}
