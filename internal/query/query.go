// Package query evaluates the find-style predicates (-inum, -name, -size,
// -nlinks) against tree entries.
package query

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	osfind "github.com/wafemand/os-find"
)

// Entry is the part of [osfind.Entry] a Query inspects.
type Entry interface {
	Name() string
	Stat() (osfind.Stat, error)
}

var _ Entry = osfind.Entry{}

// Query is a conjunction of optional predicates. A nil field matches every
// entry.
type Query struct {
	Inode *uint64
	Name  *string
	Nlink *uint64
	Size  SizeRange
}

// New returns a Query that matches everything.
func New() *Query {
	return &Query{Size: AnySize()}
}

// Match reports whether e satisfies every active predicate. e is stat'ed at
// most once; a stat failure is returned as is.
func (q *Query) Match(e Entry) (bool, error) {
	if q.Name != nil && e.Name() != *q.Name {
		return false, nil
	}

	if q.Inode == nil && q.Nlink == nil && q.Size.IsAny() {
		return true, nil
	}

	st, err := e.Stat()
	if err != nil {
		return false, err
	}

	if q.Inode != nil && st.Inode != *q.Inode {
		return false, nil
	}

	if q.Nlink != nil && st.Nlink != *q.Nlink {
		return false, nil
	}

	return q.Size.Contains(st.Size), nil
}

// Predicate adapts Match to [osfind.Predicate].
func (q *Query) Predicate() osfind.Predicate {
	return func(e osfind.Entry) (bool, error) {
		return q.Match(e)
	}
}

// SizeRange is an inclusive byte-size interval.
type SizeRange struct {
	From uint64
	To   uint64
}

// AnySize returns the unbounded range.
func AnySize() SizeRange {
	return SizeRange{From: 0, To: math.MaxUint64}
}

// IsAny reports whether r accepts every size.
func (r SizeRange) IsAny() bool {
	return r.From == 0 && r.To == math.MaxUint64
}

// Contains reports whether size lies in r. Negative sizes never match.
func (r SizeRange) Contains(size int64) bool {
	if size < 0 {
		return false
	}

	s := uint64(size)

	return r.From <= s && s <= r.To
}

// Size bound operators accepted by [ParseSize].
const (
	SizeExact   = '='
	SizeAtMost  = '-'
	SizeAtLeast = '+'
)

var errEmptySize = errors.New("empty size")

// ParseSize splits a -size argument into its operator and magnitude.
// "=N" and a bare "N" mean exactly N, "-N" at most N and "+N" at least N.
// The magnitude is parsed without the operator, so it is never negative.
func ParseSize(s string) (op byte, n uint64, err error) {
	if s == "" {
		return 0, 0, errEmptySize
	}

	op = SizeExact

	switch s[0] {
	case SizeExact, SizeAtMost, SizeAtLeast:
		op = s[0]
		s = s[1:]
	}

	n, err = strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return op, n, nil
}

// Update narrows r with one bound. Bounds accumulate: several -size
// arguments yield their intersection.
func (r *SizeRange) Update(op byte, n uint64) {
	switch op {
	case SizeExact:
		r.From = n
		r.To = n
	case SizeAtMost:
		r.To = min(r.To, n)
	case SizeAtLeast:
		r.From = max(r.From, n)
	}
}

// AddSize parses a -size argument and narrows q.Size with it.
func (q *Query) AddSize(arg string) error {
	op, n, err := ParseSize(arg)
	if err != nil {
		return err
	}

	q.Size.Update(op, n)

	return nil
}
