//go:build unix && !linux

package osfind

// Only Linux exposes getdents64 with the linux_dirent64 layout; the native
// backend is the portable one everywhere else.
func openNativeEnumerator(path string, bufSize int) (dirEnumerator, error) {
	return openPortableEnumerator(path, bufSize)
}
