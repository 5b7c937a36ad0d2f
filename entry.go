package osfind

// Entry is one file or directory found in the tree.
//
// Entry is an immutable value and holds no OS resources. Its metadata is
// not cached: every call to [Entry.Stat] queries the file system again.
type Entry struct {
	path  string
	isDir bool
}

// NewEntry canonicalizes path (see [Normalize]) and stats it to learn
// whether it is a directory.
//
// Returns an [*IOError] with Op [OpGetwd] if a relative path cannot be
// resolved, or Op [OpStat] if the path cannot be stat'ed.
func NewEntry(path string) (Entry, error) {
	p, err := Normalize(path)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{path: p}

	st, err := e.Stat()
	if err != nil {
		return Entry{}, err
	}

	e.isDir = st.IsDir()

	return e, nil
}

// newChildEntry builds a child of an already canonical parent without
// re-normalizing or stat'ing. name must come from a directory listing, which
// guarantees it holds no separator and is neither "." nor "..".
func newChildEntry(parent Entry, name string, isDir bool) Entry {
	return Entry{path: joinChild(parent.path, name), isDir: isDir}
}

// Path returns the canonical absolute path.
func (e Entry) Path() string {
	return e.path
}

// Name returns the last path segment ("" for the root).
func (e Entry) Name() string {
	return baseName(e.path)
}

// IsDir reports the classification made when the entry was created.
func (e Entry) IsDir() bool {
	return e.isDir
}

func (e Entry) String() string {
	return e.path
}

// Stat queries the file system for the entry's metadata. Symlinks are
// followed, as with stat(2).
func (e Entry) Stat() (Stat, error) {
	st, err := statPath(e.path)
	if err != nil {
		return Stat{}, newIOError(OpStat, e.path, err)
	}

	return st, nil
}
