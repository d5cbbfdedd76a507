// Package datafile writes the per-session log file a timer button can be
// pointed at.
//
// The file is never created by the plugin: a path that does not exist is a
// silent no-op for both operations, so a typo in the property inspector
// cannot scatter files across the disk.
package datafile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// Writer performs data-file operations on a file system.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a Writer on fsys. A nil fsys selects the OS file system.
func NewWriter(fsys afero.Fs) *Writer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Writer{fs: fsys}
}

// FormatEntry renders one log line: "<elapsed> - <information>\n".
func FormatEntry(elapsed, information string) string {
	return elapsed + " - " + information + "\n"
}

// Exists reports whether path exists.
func (w *Writer) Exists(path string) (bool, error) {
	ok, err := afero.Exists(w.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return ok, nil
}

// Truncate empties path if it exists. It reports whether the file was
// truncated.
func (w *Writer) Truncate(path string) (bool, error) {
	ok, err := w.Exists(path)
	if err != nil || !ok {
		return false, err
	}
	f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("truncate %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("truncate %s: %w", path, err)
	}
	return true, nil
}

// AppendEntry appends FormatEntry(elapsed, information) to path if it
// exists. It reports whether the line was written.
func (w *Writer) AppendEntry(path, elapsed, information string) (bool, error) {
	ok, err := w.Exists(path)
	if err != nil || !ok {
		return false, err
	}
	f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("append %s: %w", path, err)
	}

	_, werr := f.WriteString(FormatEntry(elapsed, information))
	cerr := f.Close()
	if werr != nil {
		return false, fmt.Errorf("append %s: %w", path, werr)
	}
	if cerr != nil {
		return false, fmt.Errorf("append %s: %w", path, cerr)
	}
	return true, nil
}
