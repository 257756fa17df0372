// Package fsdir is the standard filesystem enumeration facility spec.md
// §6 treats as an external collaborator: directory listing, entry
// metadata, and path canonicalisation, built on raw getdents64/stat the
// way the teacher repo's internal/walker package does it, generalized so
// both walker passes (discovery and size aggregation) share one
// enumeration path instead of each reinventing it.
package fsdir

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// EntryType classifies a directory entry without requiring a stat call
// in the common case (the kernel already tells us via d_type).
type EntryType int

const (
	Unknown EntryType = iota
	File
	Dir
	Symlink
	Other
)

// Entry is one child of a directory, as returned by ReadDir.
type Entry struct {
	Name string
	Path string
	Type EntryType
}

// Info is the metadata ReadDir/Stat report for an entry.
type Info struct {
	Size  int64
	IsDir bool
	Inode uint64
}

// ReadDir lists dir's children using getdents64, resolving any
// DT_UNKNOWN entries (some filesystems don't populate d_type) with an
// extra stat call. Entries are returned in kernel order, which is
// unspecified — callers that need a deterministic order must sort.
func ReadDir(dir string) ([]Entry, error) {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_NOATIME, 0)
	if err != nil {
		fd, err = unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY, 0)
		if err != nil {
			return nil, &PathError{Path: dir, Err: err}
		}
	}
	defer unix.Close(fd)

	buf := make([]byte, 32*1024)
	var raws []rawDirent
	var out []Entry

	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			return out, &PathError{Path: dir, Err: err}
		}
		if n == 0 {
			break
		}
		raws = parseDirents(buf, n, raws)
		for _, r := range raws {
			full := joinPath(dir, r.name)
			et := classify(r.dtype)
			if et == Unknown {
				if info, statErr := Lstat(full); statErr == nil {
					et = entryTypeFromInfo(info)
				}
			}
			out = append(out, Entry{Name: r.name, Path: full, Type: et})
		}
	}

	return out, nil
}

func classify(dtype uint8) EntryType {
	switch dtype {
	case dtDir:
		return Dir
	case dtReg:
		return File
	case dtLnk:
		return Symlink
	case dtUnknown:
		return Unknown
	default:
		return Other
	}
}

func entryTypeFromInfo(info Info) EntryType {
	if info.IsDir {
		return Dir
	}
	return File
}

// Stat follows symlinks (like os.Stat / POSIX stat(2)).
func Stat(path string) (Info, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Info{}, &PathError{Path: path, Err: err}
	}
	return Info{
		Size:  st.Size,
		IsDir: st.Mode&unix.S_IFMT == unix.S_IFDIR,
		Inode: st.Ino,
	}, nil
}

// Lstat does not follow a final symlink component (like os.Lstat).
func Lstat(path string) (Info, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Info{}, &PathError{Path: path, Err: err}
	}
	return Info{
		Size:  st.Size,
		IsDir: st.Mode&unix.S_IFMT == unix.S_IFDIR,
		Inode: st.Ino,
	}, nil
}

// Canonicalize resolves path to an absolute, symlink-free form, the way
// spec.md §4.3 setup step 1 requires for the starting directory.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return real, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := Stat(path)
	return err == nil && info.IsDir
}

// IsTerminal reports whether fd refers to a terminal, using the same
// ioctl probe as the teacher's internal/output/color.go.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}

// PathError is a structured per-call error, the unit spec.md §7's
// per-entry-I/O-error taxonomy skips over without aborting the walk.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return "fsdir: " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
