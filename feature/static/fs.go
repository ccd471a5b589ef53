package static

import (
	"io"
	"io/fs"
	"net/http"
	"os"
)

// dirFS opens files through http.Dir but never hands out an open directory.
// Directory entries are read up front and the OS handle is closed before
// Open returns, so callers that forget to close a directory leak nothing.
type dirFS struct {
	root http.FileSystem
}

func newDirFS(root string) dirFS {
	return dirFS{root: http.Dir(root)}
}

func (d dirFS) Open(name string) (http.File, error) {
	f, err := d.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	entries, err := f.Readdir(-1)
	_ = f.Close()
	if err != nil {
		return nil, err
	}
	return &memDir{info: info, entries: entries}, nil
}

// isDir reports whether name resolves to a directory under the root.
func (d dirFS) isDir(name string) bool {
	f, err := d.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

// memDir is a directory snapshot satisfying http.File.
type memDir struct {
	info    fs.FileInfo
	entries []fs.FileInfo
	pos     int
}

func (m *memDir) Close() error { return nil }

func (m *memDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: m.info.Name(), Err: fs.ErrInvalid}
}

func (m *memDir) Seek(int64, int) (int64, error) {
	return 0, &fs.PathError{Op: "seek", Path: m.info.Name(), Err: fs.ErrInvalid}
}

func (m *memDir) Stat() (os.FileInfo, error) { return m.info, nil }

// Readdir follows os.File.Readdir semantics.
func (m *memDir) Readdir(count int) ([]os.FileInfo, error) {
	rest := m.entries[m.pos:]
	if count <= 0 {
		m.pos = len(m.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if count > len(rest) {
		count = len(rest)
	}
	m.pos += count
	return rest[:count], nil
}
