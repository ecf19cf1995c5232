package filesystem

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Default permissions for files and directories created in the libraries
const (
	DirMode  fs.FileMode = 0755
	FileMode fs.FileMode = 0644
)

// Exists reports whether path exists on fsys. Errors other than not-exist
// are treated as existing so callers never overwrite something they cannot see.
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	if err == nil {
		return true
	}
	return !os.IsNotExist(err)
}

// IsDir reports whether path is an existing directory
func IsDir(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// ReadText reads a whole document. Directories are rejected.
func ReadText(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText overwrites a whole document, creating parent directories
func WriteText(fsys afero.Fs, path, content string) error {
	return WriteFile(fsys, path, []byte(content))
}

// WriteFile overwrites path with data, creating parent directories
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, DirMode); err != nil {
			return err
		}
	}
	return afero.WriteFile(fsys, path, data, FileMode)
}

// CopyFile copies src to dst byte for byte, replacing dst
func CopyFile(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return WriteFile(fsys, dst, data)
}

// SameContent reports whether both files exist and hold identical bytes
func SameContent(fsys afero.Fs, a, b string) bool {
	da, err := afero.ReadFile(fsys, a)
	if err != nil {
		return false
	}
	db, err := afero.ReadFile(fsys, b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}

// CountFiles counts regular files in dir whose name has the given extension
func CountFiles(fsys afero.Fs, dir, ext string) (int, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ext {
			n++
		}
	}
	return n, nil
}
