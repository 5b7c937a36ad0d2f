package osfind_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	osfind "github.com/wafemand/os-find"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()

	fullPath := filepath.Join(root, rel)
	parent := filepath.Dir(fullPath)

	err := os.MkdirAll(parent, 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", parent, err)
	}

	err = os.WriteFile(fullPath, data, 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

func writeDir(t *testing.T, root, rel string) {
	t.Helper()

	err := os.MkdirAll(filepath.Join(root, rel), 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
}

func writeSymlink(t *testing.T, root, targetRel, linkRel string) {
	t.Helper()

	target := filepath.Join(root, targetRel)
	link := filepath.Join(root, linkRel)

	err := os.MkdirAll(filepath.Dir(link), 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(link), err)
	}

	err = os.Symlink(target, link)
	if err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
}

func removeAll(t *testing.T, path string) {
	t.Helper()

	err := os.RemoveAll(path)
	if err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
}

// mustRoot returns the canonical entry for a test directory.
func mustRoot(t *testing.T, dir string) osfind.Entry {
	t.Helper()

	root, err := osfind.NewEntry(dir)
	if err != nil {
		t.Fatalf("NewEntry %s: %v", dir, err)
	}

	return root
}

// relPaths strips root's path from each entry.
func relPaths(root osfind.Entry, entries []osfind.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimPrefix(e.Path(), root.Path()+"/"))
	}

	return out
}

func assertStringSlicesEqual(t *testing.T, got, want []string) {
	t.Helper()

	gotSorted := append([]string(nil), got...)
	wantSorted := append([]string(nil), want...)

	sort.Strings(gotSorted)
	sort.Strings(wantSorted)

	if len(gotSorted) != len(wantSorted) {
		t.Fatalf("slice length mismatch: got=%d want=%d (got=%v want=%v)", len(gotSorted), len(wantSorted), gotSorted, wantSorted)
	}

	for i := range gotSorted {
		if gotSorted[i] != wantSorted[i] {
			t.Fatalf("slice mismatch at %d: got=%v want=%v", i, gotSorted, wantSorted)
		}
	}
}

func assertIOError(t *testing.T, err error, wantPath, wantOp string, wantKind osfind.Kind) {
	t.Helper()

	var ioErr *osfind.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %T (%v)", err, err)
	}

	if ioErr.Path != wantPath {
		t.Fatalf("unexpected error path: got=%s want=%s", ioErr.Path, wantPath)
	}

	if ioErr.Op != wantOp {
		t.Fatalf("unexpected error op: got=%s want=%s", ioErr.Op, wantOp)
	}

	if ioErr.Kind != wantKind {
		t.Fatalf("unexpected error kind: got=%s want=%s", ioErr.Kind, wantKind)
	}
}
