package osfind

import (
	"errors"
	"io"
)

// Reader lists the immediate children of a directory.
//
// A Reader holds no open handles between calls and may be used from
// multiple goroutines.
type Reader struct {
	open    openEnumeratorFunc
	bufSize int
}

// NewReader returns a Reader configured by opts. Only [WithBackend] and
// [WithBufferSize] affect a Reader.
func NewReader(opts ...Option) *Reader {
	cfg := applyOptions(opts)

	return newReader(cfg)
}

func newReader(cfg options) *Reader {
	open := cfg.open
	if open == nil {
		open = cfg.Backend.opener()
	}

	return &Reader{
		open:    open,
		bufSize: cfg.BufferSize,
	}
}

// List returns the regular files and directories directly inside dir, in
// enumeration order. "." and ".." and every other file type (symlinks,
// sockets, FIFOs, devices) are excluded.
//
// Children are classified from the directory listing itself; List does not
// stat them.
//
// Errors are [*IOError]: Op [OpOpen] if dir cannot be opened, Op [OpReaddir]
// if reading fails midway (children read so far are returned with the
// error), Op [OpClose] if releasing the handle fails.
func (r *Reader) List(dir Entry) (children []Entry, err error) {
	en, err := r.open(dir.path, r.bufSize)
	if err != nil {
		return nil, newIOError(OpOpen, dir.path, err)
	}

	defer func() {
		closeErr := en.closeHandle()
		if closeErr != nil && err == nil {
			err = newIOError(OpClose, dir.path, closeErr)
		}
	}()

	var recs []dirent

	for {
		recs, err = en.next(recs[:0])

		for _, d := range recs {
			if d.surfaced() {
				children = append(children, newChildEntry(dir, d.name, d.kind == direntDir))
			}
		}

		if errors.Is(err, io.EOF) {
			return children, nil
		}

		if err != nil {
			return children, newIOError(OpReaddir, dir.path, err)
		}
	}
}
