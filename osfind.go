// Package osfind searches a directory tree for regular files and directories.
//
// It reads directories through the kernel's raw directory-entry stream where
// available (Linux getdents64) and falls back to portable APIs elsewhere.
//
// # Paths
//
// Every [Entry] carries a canonical path: absolute, '/'-separated, with no
// empty, "." or ".." segments and no trailing separator (except the root
// "/"). Canonicalization is purely lexical; symlinks are never resolved
// (see [Normalize]).
//
// # File types
//
// Only regular files and directories are surfaced by [Reader.List]. Symlinks,
// FIFOs, sockets and devices are skipped, so the walk never follows a
// symlink into another part of the tree.
//
// # Traversal order
//
// [Walker.Walk] is depth-first. A directory's whole subtree is reported
// before the directory itself is tested, and before the walk moves on to
// the directory's next sibling. Siblings are visited in enumeration order,
// which is unspecified.
//
// # Errors
//
// All file system failures are reported as [*IOError]. The Op field tells
// which class of failure occurred:
//
//	getwd    the working directory could not be resolved (fatal)
//	stat     metadata query failed (fatal at the call site)
//	open     a directory could not be opened for listing (per directory)
//	readdir  a directory read failed mid-listing (per directory)
//	close    releasing a directory handle failed
//
// During a walk, open and readdir failures are logged and the directory
// contributes no children; the rest of the tree is still walked.
package osfind

import (
	"errors"
	"fmt"
	"syscall"
)

// Operations reported in [IOError.Op].
const (
	OpGetwd   = "getwd"
	OpStat    = "stat"
	OpOpen    = "open"
	OpReaddir = "readdir"
	OpClose   = "close"
)

// Kind classifies the cause of an [IOError].
type Kind uint8

const (
	// KindOther is any failure not covered by a more specific kind.
	KindOther Kind = iota
	// KindNotFound means the path does not exist.
	KindNotFound
	// KindPermission means access was denied.
	KindPermission
	// KindNotDir means a directory operation hit a non-directory.
	KindNotDir
	// KindCorrupt means the directory-entry stream could not be parsed.
	KindCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindPermission:
		return "permission-denied"
	case KindNotDir:
		return "not-a-directory"
	case KindCorrupt:
		return "corrupt"
	default:
		return "other"
	}
}

// IOError is returned when a file system operation fails.
type IOError struct {
	// Op is the operation that failed: one of the Op* constants.
	Op string
	// Path is the canonical path the operation was applied to. Empty for
	// OpGetwd.
	Path string
	// Kind classifies Err.
	Kind Kind
	// Err is the underlying error.
	Err error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

var errInvalidDirent = errors.New("invalid dirent")

func newIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOENT:
			return KindNotFound
		case syscall.EACCES, syscall.EPERM:
			return KindPermission
		case syscall.ENOTDIR:
			return KindNotDir
		}
	}

	if errors.Is(err, errInvalidDirent) {
		return KindCorrupt
	}

	return KindOther
}
