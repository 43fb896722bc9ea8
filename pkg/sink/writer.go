package sink

import (
	"io"
	"path"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

// Writer stores artifacts in a billy filesystem.
type Writer struct {
	fs billy.Filesystem
}

// NewWriter returns a writer rooted at fs.
func NewWriter(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs}
}

// NewDirWriter returns a writer for a directory on the local disk.
func NewDirWriter(dir string) *Writer {
	return NewWriter(osfs.New(dir))
}

// Write stores data under name, creating parent directories as needed, and
// returns the full path of the written file.
func (w *Writer) Write(name string, data []byte) (string, error) {
	if dir := path.Dir(name); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := util.WriteFile(w.fs, name, data, 0o644); err != nil {
		return "", err
	}
	return w.fs.Join(w.fs.Root(), name), nil
}

// Read returns the contents of a previously written artifact.
func (w *Writer) Read(name string) ([]byte, error) {
	f, err := w.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Exists reports whether name is present.
func (w *Writer) Exists(name string) bool {
	_, err := w.fs.Stat(name)
	return err == nil
}
