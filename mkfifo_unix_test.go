//go:build unix

package osfind_test

import (
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func mkfifo(t *testing.T, root, rel string) {
	t.Helper()

	err := unix.Mkfifo(filepath.Join(root, rel), 0o600)
	if err != nil {
		t.Fatalf("mkfifo %s: %v", rel, err)
	}
}
