//go:build unix

package osfind

// io_portable.go implements the portable enumeration backend (see
// io_contract.go) on top of (*os.File).ReadDir.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
)

// portableBatchSize is the number of entries requested per ReadDir call.
const portableBatchSize = 256

type portableEnumerator struct {
	f *os.File
}

func openPortableEnumerator(path string, _ int) (dirEnumerator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unwrapPathError(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, unwrapPathError(err)
	}

	if !info.IsDir() {
		_ = f.Close()

		return nil, syscall.ENOTDIR
	}

	return &portableEnumerator{f: f}, nil
}

func (e *portableEnumerator) next(dst []dirent) ([]dirent, error) {
	entries, err := e.f.ReadDir(portableBatchSize)
	for _, de := range entries {
		dst = append(dst, dirent{name: de.Name(), kind: kindFromMode(de.Type())})
	}

	if err == io.EOF || (err == nil && len(entries) == 0) {
		return dst, io.EOF
	}

	if err != nil {
		return dst, fmt.Errorf("readdir: %w", unwrapPathError(err))
	}

	return dst, nil
}

func (e *portableEnumerator) closeHandle() error {
	if e.f == nil {
		return nil
	}

	err := e.f.Close()
	e.f = nil

	if err != nil {
		return fmt.Errorf("close dir: %w", err)
	}

	return nil
}

// kindFromMode maps fs.DirEntry.Type bits. The os package already lstats
// entries whose d_type is unknown, so a zero type is a regular file.
func kindFromMode(m fs.FileMode) direntKind {
	switch {
	case m.IsDir():
		return direntDir
	case m&fs.ModeType == 0:
		return direntReg
	default:
		return direntOther
	}
}

// unwrapPathError strips *fs.PathError so IOError carries its own path.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}

	return err
}
