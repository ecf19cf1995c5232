// Package archive extracts component archives into a scratch directory and
// guarantees the directory is removed afterwards.
package archive

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/arthur-debert/kicadlib/pkg/errors"
	"github.com/arthur-debert/kicadlib/pkg/filesystem"
	"github.com/arthur-debert/kicadlib/pkg/logging"
)

// TempPrefix names scratch directories
const TempPrefix = "kicadlib-"

// Extraction is an extracted archive
type Extraction struct {
	// Dir is the scratch directory holding the files
	Dir string
	// Files are absolute paths of the extracted regular files, archive order
	Files []string

	fs afero.Fs
}

// Cleanup removes the scratch directory
func (e *Extraction) Cleanup() error {
	if e == nil || e.Dir == "" {
		return nil
	}
	if err := e.fs.RemoveAll(e.Dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", e.Dir)
	}
	return nil
}

// Extract unpacks zipPath into a new scratch directory. Entries escaping the
// directory are rejected. On error nothing is left behind.
func Extract(fsys afero.Fs, zipPath string) (*Extraction, error) {
	log := logging.GetLogger("archive")

	f, err := fsys.Open(zipPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot open archive %s", zipPath).
			WithDetail("path", zipPath)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot stat archive %s", zipPath).
			WithDetail("path", zipPath)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrArchiveOpen, "%s is a directory, not an archive", zipPath).
			WithDetail("path", zipPath)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "%s is not a zip archive", zipPath).
			WithDetail("path", zipPath)
	}

	dir, err := afero.TempDir(fsys, "", TempPrefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create scratch directory")
	}
	ext := &Extraction{Dir: dir, fs: fsys}

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		target, err := safeJoin(dir, zf.Name)
		if err != nil {
			_ = ext.Cleanup()
			return nil, err
		}
		if err := extractFile(fsys, zf, target); err != nil {
			_ = ext.Cleanup()
			return nil, errors.Wrapf(err, errors.ErrArchiveExtract, "cannot extract %s", zf.Name).
				WithDetail("entry", zf.Name)
		}
		ext.Files = append(ext.Files, target)
	}

	log.Debug().Str("archive", zipPath).Str("dir", dir).Int("files", len(ext.Files)).Msg("Archive extracted")
	return ext, nil
}

// safeJoin maps an archive entry name under dir, rejecting absolute names
// and parent traversal
func safeJoin(dir, name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") || filepath.VolumeName(clean) != "" ||
		(len(clean) > 1 && clean[1] == ':') {
		return "", errors.Newf(errors.ErrArchiveExtract, "archive entry %q escapes the extraction directory", name).
			WithDetail("entry", name)
	}
	return filepath.Join(dir, filepath.FromSlash(clean)), nil
}

func extractFile(fsys afero.Fs, zf *zip.File, target string) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	if err := fsys.MkdirAll(filepath.Dir(target), filesystem.DirMode); err != nil {
		return err
	}
	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filesystem.FileMode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// With extracts zipPath, runs fn and removes the scratch directory on every
// exit path, including a panic in fn
func With(fsys afero.Fs, zipPath string, fn func(*Extraction) error) (err error) {
	ext, err := Extract(fsys, zipPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ext.Cleanup(); cerr != nil {
			logger := logging.GetLogger("archive")
			logger.Warn().Err(cerr).Str("dir", ext.Dir).Msg("Scratch directory not removed")
			if err == nil {
				err = cerr
			}
		}
	}()
	return fn(ext)
}
