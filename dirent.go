package osfind

import (
	"encoding/binary"
)

// ============================================================================
// Raw directory-entry records
// ============================================================================

// linux_dirent64 offsets (from linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
const (
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
	direntMinSize      = direntNameOffset
)

// d_type values from dirent.h. They are identical on every platform that
// reports d_type.
const (
	dtUnknown = 0
	dtFifo    = 1
	dtChr     = 2
	dtDir     = 4
	dtBlk     = 6
	dtReg     = 8
	dtLnk     = 10
	dtSock    = 12
)

// direntKind is the classification a backend gives each record.
type direntKind uint8

const (
	direntOther direntKind = iota
	direntDir
	direntReg
	// direntUnknown records must be classified by the backend (lstat) before
	// they are surfaced.
	direntUnknown
)

// dirent is one parsed directory-entry record.
type dirent struct {
	name string
	kind direntKind
}

func kindFromType(t uint8) direntKind {
	switch t {
	case dtDir:
		return direntDir
	case dtReg:
		return direntReg
	case dtUnknown:
		return direntUnknown
	default:
		return direntOther
	}
}

// parseDirents appends every record in buf (the bytes returned by one
// getdents64 call) to dst. The kernel only returns whole records, so a record
// that is shorter than its header or runs past the end of buf means the
// stream is corrupt.
//
// Records are returned as-is, including "." and ".."; filtering is done by
// the caller so every backend shares it.
func parseDirents(buf []byte, dst []dirent) ([]dirent, error) {
	for len(buf) > 0 {
		if len(buf) < direntMinSize {
			return dst, errInvalidDirent
		}

		reclen := int(binary.NativeEndian.Uint16(buf[direntReclenOffset:]))
		if reclen < direntMinSize || reclen > len(buf) {
			return dst, errInvalidDirent
		}

		rec := buf[:reclen]
		buf = buf[reclen:]

		// Name ends at the first NUL; the rest of the record is padding.
		name := rec[direntNameOffset:]
		for i, b := range name {
			if b == 0 {
				name = name[:i]

				break
			}
		}

		dst = append(dst, dirent{
			name: string(name),
			kind: kindFromType(rec[direntTypeOffset]),
		})
	}

	return dst, nil
}

// surfaced reports whether a classified record is handed to callers: only
// directories and regular files, never the "." and ".." self/parent links.
func (d dirent) surfaced() bool {
	if d.name == "" || isDotEntry(d.name) {
		return false
	}

	return d.kind == direntDir || d.kind == direntReg
}

func isDotEntry(name string) bool {
	return name == "." || name == ".."
}
