package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Dir writes artifacts beneath a local directory. Directories, including the
// root, are only created when the first key beneath them is written.
type Dir struct {
	root string
}

// NewDir returns a Sink rooted at dir.
func NewDir(dir string) (*Dir, error) {
	if dir == "" {
		return nil, errors.New("sink: empty directory")
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

// Root returns the absolute path of the directory.
func (d *Dir) Root() string {
	return d.root
}

// Put writes b to the file named by key, creating parent directories as
// needed. The data is written to a temporary file first and renamed into
// place so readers never see a partial file.
func (d *Dir) Put(ctx context.Context, key string, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidKey(key) {
		return errBadKey
	}

	file := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}

// Close is a no-op.
func (d *Dir) Close() error {
	return nil
}
