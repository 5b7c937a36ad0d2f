package osfind

import "golang.org/x/sys/unix"

// Stat holds the metadata consulted by filters.
type Stat struct {
	Inode uint64
	Mode  uint32
	Nlink uint64
	Size  int64
}

// IsDir reports whether Mode describes a directory.
func (s Stat) IsDir() bool {
	return s.Mode&unix.S_IFMT == unix.S_IFDIR
}

// IsRegular reports whether Mode describes a regular file.
func (s Stat) IsRegular() bool {
	return s.Mode&unix.S_IFMT == unix.S_IFREG
}

func statPath(path string) (Stat, error) {
	var st unix.Stat_t

	for {
		err := unix.Stat(path, &st)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return Stat{}, err
		}

		break
	}

	return Stat{
		Inode: uint64(st.Ino),
		Mode:  uint32(st.Mode),
		Nlink: uint64(st.Nlink),
		Size:  st.Size,
	}, nil
}
