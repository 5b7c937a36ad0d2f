package osfind

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Predicate decides whether an entry is reported to the [Consumer].
//
// A non-nil error (typically a failed [Entry.Stat]) aborts the walk.
type Predicate func(e Entry) (bool, error)

// Consumer is called once for each entry accepted by the [Predicate].
//
// A non-nil error aborts the walk.
type Consumer func(e Entry) error

// MatchAll is a Predicate that accepts every entry.
func MatchAll(Entry) (bool, error) {
	return true, nil
}

// Walker drives a depth-first traversal of a directory tree.
type Walker struct {
	reader  *Reader
	log     zerolog.Logger
	onError func(err error)
}

// NewWalker returns a Walker configured by opts.
func NewWalker(opts ...Option) *Walker {
	cfg := applyOptions(opts)

	return &Walker{
		reader:  newReader(cfg),
		log:     *cfg.Logger,
		onError: cfg.OnError,
	}
}

// frame is one directory on the walk stack: its children and the index of
// the child currently being processed.
type frame struct {
	children []Entry
	next     int
}

// Walk visits every file and directory below root.
//
// For each child, in enumeration order: if it is a directory its subtree is
// walked first, then pred is evaluated and consume is called on a match.
// root itself is never passed to pred or consume.
//
// A directory that cannot be listed is logged, reported to the
// [WithOnError] hook, and treated as empty; the walk continues with its
// siblings. A failure to close a fully listed directory is logged and
// reported the same way, but its children are still walked. Errors from
// pred or consume stop the walk and are returned.
//
// ctx is checked before each directory is listed. If it is cancelled Walk
// returns context.Cause(ctx).
//
// The walk uses an explicit stack, so its depth is not limited by the
// goroutine stack.
func (w *Walker) Walk(ctx context.Context, root Entry, pred Predicate, consume Consumer) error {
	if pred == nil {
		pred = MatchAll
	}

	if consume == nil {
		consume = func(Entry) error { return nil }
	}

	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	stack := []frame{{children: w.list(root)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.children) {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}

			// The subtree of the parent's current child is done; now the
			// child itself is tested.
			parent := &stack[len(stack)-1]

			err := w.visit(parent.children[parent.next], pred, consume)
			if err != nil {
				return err
			}

			parent.next++

			continue
		}

		child := top.children[top.next]

		if child.IsDir() {
			if ctx.Err() != nil {
				return context.Cause(ctx)
			}

			stack = append(stack, frame{children: w.list(child)})

			continue
		}

		err := w.visit(child, pred, consume)
		if err != nil {
			return err
		}

		top.next++
	}

	return nil
}

func (w *Walker) visit(e Entry, pred Predicate, consume Consumer) error {
	ok, err := pred(e)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	return consume(e)
}

// list returns dir's children, or nil if the directory cannot be listed.
// Partial results of a failed listing are discarded. A listing that only
// failed to release its handle is complete and is kept.
func (w *Walker) list(dir Entry) []Entry {
	children, err := w.reader.List(dir)
	if err == nil {
		return children
	}

	ev := w.log.Error().Err(err).Str("path", dir.Path())

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		ev = ev.Str("op", ioErr.Op).Stringer("kind", ioErr.Kind)
	}

	if w.onError != nil {
		defer w.onError(err)
	}

	if ioErr != nil && ioErr.Op == OpClose {
		ev.Msg("cannot close directory")

		return children
	}

	ev.Msg("cannot list directory")

	return nil
}
