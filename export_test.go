package osfind

// Export internal symbols for white-box tests in the osfind_test package.
var (
	NormalizeAbs  = normalizeAbs
	MinBufferSize = minBufferSize
)

// BufferSize reports the staging buffer size a Reader was configured with.
func (r *Reader) BufferSize() int {
	return r.bufSize
}

// SetGetwd replaces the working-directory lookup used by Normalize and
// returns a func restoring the original. Callers must not run in parallel.
func SetGetwd(fn func() (string, error)) (restore func()) {
	orig := getwd
	getwd = fn

	return func() { getwd = orig }
}

// WithFailingOpen makes opening any directory in fail return the mapped
// error instead of touching the file system. Other directories are opened
// with the configured backend.
func WithFailingOpen(fail map[string]error) Option {
	return func(o *options) {
		o.open = func(path string, bufSize int) (dirEnumerator, error) {
			if err, ok := fail[path]; ok {
				return nil, err
			}

			return o.Backend.opener()(path, bufSize)
		}
	}
}

// WithFailingClose makes releasing the handle of any directory in fail
// return the mapped error after the real handle has been closed.
func WithFailingClose(fail map[string]error) Option {
	return func(o *options) {
		o.open = func(path string, bufSize int) (dirEnumerator, error) {
			en, err := o.Backend.opener()(path, bufSize)
			if err != nil {
				return nil, err
			}

			if closeErr, ok := fail[path]; ok {
				return &failingCloseEnumerator{dirEnumerator: en, err: closeErr}, nil
			}

			return en, nil
		}
	}
}

type failingCloseEnumerator struct {
	dirEnumerator
	err error
}

func (f *failingCloseEnumerator) closeHandle() error {
	_ = f.dirEnumerator.closeHandle()

	return f.err
}
