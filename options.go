package osfind

import (
	"os"

	"github.com/rs/zerolog"
)

const (
	// DefaultBufferSize is the default getdents64 staging buffer size.
	DefaultBufferSize = 1024

	// minBufferSize fits the largest possible linux_dirent64 record (19-byte
	// header + 255-byte name + NUL, padded to 8). A smaller buffer makes
	// getdents64 fail with EINVAL.
	minBufferSize = 280

	// maxBufferSize caps the staging buffer.
	maxBufferSize = 1 << 20
)

// Option configures [NewReader] and [NewWalker].
// Options are applied in order.
type Option func(*options)

// WithLogger sets the logger used for per-directory diagnostics.
//
// # Default
//
// A zerolog logger writing JSON lines to os.Stderr.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.Logger = &l
	}
}

// WithBackend selects the directory enumeration backend.
//
// # Default
//
// [BackendNative].
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.Backend = b
	}
}

// WithBufferSize sets the size of the staging buffer that raw
// directory-entry records are read into (native backend only).
//
// Larger buffers mean fewer getdents64 calls on big directories. Values are
// clamped to [280, 1MiB]; values <= 0 use [DefaultBufferSize].
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.BufferSize = n
	}
}

// WithOnError registers a hook called once for each directory that could
// not be listed during [Walker.Walk], after the failure has been logged.
//
// err is always an [*IOError]. The hook is called synchronously from the
// walking goroutine.
func WithOnError(fn func(err error)) Option {
	return func(o *options) {
		o.OnError = fn
	}
}

type options struct {
	// Logger receives per-directory diagnostics. nil uses the default.
	Logger *zerolog.Logger
	// Backend selects the enumeration backend.
	Backend Backend
	// BufferSize is the getdents64 staging buffer size.
	BufferSize int
	// OnError observes per-directory listing failures.
	OnError func(err error)
	// open overrides the backend opener (tests only).
	open openEnumeratorFunc
}

func applyOptions(opts []Option) options {
	cfg := options{}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Logger == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		cfg.Logger = &l
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}

	cfg.BufferSize = max(cfg.BufferSize, minBufferSize)
	cfg.BufferSize = min(cfg.BufferSize, maxBufferSize)

	return cfg
}
