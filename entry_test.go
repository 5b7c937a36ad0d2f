package osfind_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	osfind "github.com/wafemand/os-find"
)

func Test_NewEntry_Classifies_Directory_And_File_When_Paths_Exist(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "sub/f.txt", []byte("hello"))

	dir := mustRoot(t, filepath.Join(root, "sub"))
	if !dir.IsDir() {
		t.Fatal("expected sub to be a directory")
	}

	file := mustRoot(t, filepath.Join(root, "sub", "..", "sub", ".", "f.txt"))
	if file.IsDir() {
		t.Fatal("expected f.txt to be a file")
	}

	if file.Path() != dir.Path()+"/f.txt" {
		t.Fatalf("unexpected canonical path: %s", file.Path())
	}

	if file.Name() != "f.txt" {
		t.Fatalf("unexpected name: %s", file.Name())
	}
}

func Test_NewEntry_Returns_Stat_Error_When_Path_Missing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	missing := filepath.Join(root, "missing")

	_, err := osfind.NewEntry(missing)
	if err == nil {
		t.Fatal("expected error")
	}

	assertIOError(t, err, osfind.NormalizeAbs(missing), osfind.OpStat, osfind.KindNotFound)
}

func Test_Entry_Name_Returns_Empty_When_Entry_Is_Filesystem_Root(t *testing.T) {
	t.Parallel()

	root := mustRoot(t, "/")
	if root.Path() != "/" || root.Name() != "" || !root.IsDir() {
		t.Fatalf("unexpected root entry: path=%q name=%q dir=%v", root.Path(), root.Name(), root.IsDir())
	}
}

func Test_Entry_Stat_Matches_Stat_Syscall_When_Called(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("12345"))

	err := os.Link(filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt"))
	if err != nil {
		t.Fatalf("link: %v", err)
	}

	e := mustRoot(t, filepath.Join(root, "a.txt"))

	st, err := e.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	var want syscall.Stat_t

	err = syscall.Stat(filepath.Join(root, "a.txt"), &want)
	if err != nil {
		t.Fatalf("syscall stat: %v", err)
	}

	if st.Inode != uint64(want.Ino) {
		t.Fatalf("inode: got=%d want=%d", st.Inode, want.Ino)
	}

	if st.Size != 5 {
		t.Fatalf("size: got=%d want=5", st.Size)
	}

	if st.Nlink != 2 {
		t.Fatalf("nlink: got=%d want=2", st.Nlink)
	}

	if !st.IsRegular() || st.IsDir() {
		t.Fatalf("unexpected mode: %o", st.Mode)
	}
}

func Test_Entry_Stat_Reflects_Changes_When_File_Modified_After_Creation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "grow.txt", []byte("a"))

	e := mustRoot(t, filepath.Join(root, "grow.txt"))

	writeFile(t, root, "grow.txt", []byte("abcdef"))

	st, err := e.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if st.Size != 6 {
		t.Fatalf("expected fresh size 6, got %d", st.Size)
	}

	err = os.Remove(filepath.Join(root, "grow.txt"))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, err = e.Stat()
	assertIOError(t, err, e.Path(), osfind.OpStat, osfind.KindNotFound)
}
