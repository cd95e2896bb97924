package core

// DirEntry is a (name, inode-reference) pair inside a directory's listing.
type DirEntry struct {
	Name string
	Ino  Ino
}

// Directory is the ordered sequence of entries belonging to a directory
// inode. It always begins with "." and ".."; the remainder is user-created
// entries in insertion order. Names within a listing are unique.
type Directory struct {
	entries []DirEntry
}

func newDirectory() *Directory {
	return &Directory{entries: make([]DirEntry, 0, 2)}
}

// append adds a fresh entry (name, ino) at the tail. It does not check
// whether name is already present: the namespace operations own
// uniqueness and check it first, not this primitive.
func (d *Directory) append(name string, ino Ino) {
	d.entries = append(d.entries, DirEntry{Name: name, Ino: ino})
}

// remove deletes the first entry whose name matches, returning the Ino it
// referenced. ok is false if no such entry exists.
func (d *Directory) remove(name string) (ino Ino, ok bool) {
	for i, e := range d.entries {
		if e.Name == name {
			ino = e.Ino
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return ino, true
		}
	}
	return NoIno, false
}

// lookup returns the Ino for name, exact byte-wise match, both length and
// content (a stored name that is merely a prefix of the query must not
// match).
func (d *Directory) lookup(name string) (ino Ino, ok bool) {
	for _, e := range d.entries {
		if e.Name == name {
			return e.Ino, true
		}
	}
	return NoIno, false
}

// isEmpty is true iff the listing contains exactly "." and "..".
func (d *Directory) isEmpty() bool {
	return len(d.entries) == 2
}

// Entries returns a snapshot slice of the listing, safe for a caller to
// range over while readdir paginates.
func (d *Directory) Entries() []DirEntry {
	out := make([]DirEntry, len(d.entries))
	copy(out, d.entries)
	return out
}
