//go:build linux

package osfind

// io_linux.go implements the native enumeration backend (see io_contract.go)
// for Linux: getdents64 into a fixed staging buffer, with the packed
// linux_dirent64 records parsed in place by parseDirents.

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

type nativeEnumerator struct {
	fd  int
	buf []byte
}

// openNativeEnumerator opens path read-only as a directory.
func openNativeEnumerator(path string, bufSize int) (dirEnumerator, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC|unix.O_LARGEFILE, 0)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return nil, err
		}

		return &nativeEnumerator{fd: fd, buf: make([]byte, bufSize)}, nil
	}
}

func (e *nativeEnumerator) next(dst []dirent) ([]dirent, error) {
	// Retry getdents64 on EINTR without an upper bound, matching Go's stdlib.
	var (
		read int
		err  error
	)
	for {
		read, err = unix.Getdents(e.fd, e.buf)
		if err == unix.EINTR {
			continue
		}

		break
	}

	if err != nil {
		return dst, fmt.Errorf("getdents64: %w", err)
	}

	if read <= 0 {
		return dst, io.EOF
	}

	start := len(dst)

	dst, err = parseDirents(e.buf[:read], dst)
	if err != nil {
		return dst[:start], err
	}

	return e.resolveUnknown(dst, start), nil
}

// resolveUnknown classifies DT_UNKNOWN records in dst[start:] with fstatat.
// Some file systems (older XFS, some network and FUSE file systems) never
// fill in d_type. Entries that cannot be stat'ed (removed since the read,
// permissions) are dropped.
func (e *nativeEnumerator) resolveUnknown(dst []dirent, start int) []dirent {
	out := dst[:start]

	for _, d := range dst[start:] {
		if d.kind == direntUnknown && !isDotEntry(d.name) {
			kind, err := classifyAt(e.fd, d.name)
			if err != nil {
				continue
			}

			d.kind = kind
		}

		out = append(out, d)
	}

	return out
}

func (e *nativeEnumerator) closeHandle() error {
	if e.fd < 0 {
		return nil
	}

	// We intentionally do not retry close(2) on EINTR.
	err := unix.Close(e.fd)
	e.fd = -1

	if err != nil {
		return fmt.Errorf("close dir: %w", err)
	}

	return nil
}

// classifyAt classifies the named entry using fstatat(AT_SYMLINK_NOFOLLOW).
func classifyAt(dirfd int, name string) (direntKind, error) {
	var st unix.Stat_t

	for {
		err := unix.Fstatat(dirfd, name, &st, unix.AT_SYMLINK_NOFOLLOW)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return direntOther, fmt.Errorf("fstatat: %w", err)
		}

		break
	}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return direntDir, nil
	case unix.S_IFREG:
		return direntReg, nil
	default:
		return direntOther, nil
	}
}
