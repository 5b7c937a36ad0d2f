package osfind

import (
	"os"
	"strings"
)

// ============================================================================
// Path helpers
// ============================================================================

// Separator is the path separator used in canonical paths.
const Separator = "/"

// getwd is swapped out by tests.
var getwd = os.Getwd

// Normalize returns the canonical form of raw.
//
// A relative raw is resolved against the current working directory (the
// only file system access performed). Empty and "." segments are dropped,
// ".." removes the previous segment and is absorbed at the root. Symlinks
// are not resolved, so Normalize("/link/..") is "/" even if link points
// elsewhere.
func Normalize(raw string) (string, error) {
	if !strings.HasPrefix(raw, Separator) {
		cwd, err := getwd()
		if err != nil {
			return "", newIOError(OpGetwd, "", err)
		}

		raw = cwd + Separator + raw
	}

	return normalizeAbs(raw), nil
}

// normalizeAbs folds the segments of p into canonical form. p is treated as
// rooted whether or not it starts with a separator.
func normalizeAbs(p string) string {
	segs := make([]string, 0, strings.Count(p, Separator)+1)

	for _, seg := range strings.Split(p, Separator) {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}

	if len(segs) == 0 {
		return Separator
	}

	var b strings.Builder

	for _, seg := range segs {
		b.WriteString(Separator)
		b.WriteString(seg)
	}

	return b.String()
}

// joinChild appends a single kernel-reported name to a canonical parent.
// The root already ends with a separator, so it must not get a second one.
func joinChild(parent, name string) string {
	if parent == Separator {
		return parent + name
	}

	return parent + Separator + name
}

// baseName returns the text after the final separator ("" for the root).
func baseName(p string) string {
	return p[strings.LastIndex(p, Separator)+1:]
}
