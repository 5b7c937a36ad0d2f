package osfind

import "fmt"

// ============================================================================
// Directory enumeration backend contract
// ============================================================================
//
// Reader.List is written against the small dirEnumerator capability below.
// Each backend opens one directory and streams classified records out of it:
//
//   - native:   getdents64 into a fixed staging buffer, records parsed by
//     parseDirents (io_linux.go). On non-Linux unix builds native resolves to
//     the portable backend (io_nonlinux.go).
//   - portable: (*os.File).ReadDir batches (io_portable.go).
//
// Semantics expected by Reader.List:
//
//   - next appends records to dst and returns io.EOF once the stream is
//     exhausted. It may return records together with io.EOF.
//
//   - Records of kind direntUnknown must already be resolved by the backend
//     (lstat relative to the open directory); records that cannot be
//     resolved are dropped. "." and ".." may be returned; Reader.List drops
//     them.
//
//   - closeHandle releases the directory handle. It is called exactly once,
//     on every exit path, by Reader.List.
//
// Tests substitute fake enumerators through Reader.open (export_test.go).

type dirEnumerator interface {
	next(dst []dirent) ([]dirent, error)
	closeHandle() error
}

// openEnumeratorFunc opens path for enumeration using a staging buffer of
// bufSize bytes where the backend needs one.
type openEnumeratorFunc func(path string, bufSize int) (dirEnumerator, error)

var (
	_ openEnumeratorFunc = openNativeEnumerator
	_ openEnumeratorFunc = openPortableEnumerator
)

// Backend selects how directories are enumerated.
type Backend uint8

const (
	// BackendNative reads raw kernel directory-entry records where the
	// platform supports it, and falls back to BackendPortable elsewhere.
	BackendNative Backend = iota
	// BackendPortable uses (*os.File).ReadDir.
	BackendPortable
)

func (b Backend) String() string {
	if b == BackendPortable {
		return "portable"
	}

	return "native"
}

// ParseBackend parses a backend name ("native", "portable", or "" for the
// default).
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "native":
		return BackendNative, nil
	case "portable":
		return BackendPortable, nil
	default:
		return BackendNative, fmt.Errorf("unknown backend %q", s)
	}
}

func (b Backend) opener() openEnumeratorFunc {
	if b == BackendPortable {
		return openPortableEnumerator
	}

	return openNativeEnumerator
}
