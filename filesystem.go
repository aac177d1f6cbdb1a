package rarblock

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts the operations needed to open archives. Any fs.StatFS,
// such as afero.NewIOFS, satisfies it.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Open(path string) (fs.File, error)
}

type osFS struct{}

func (osFS) Stat(p string) (fs.FileInfo, error) { return os.Stat(p) }
func (osFS) Open(p string) (fs.File, error)     { return os.Open(p) }

var defaultFS osFS

// OpenSource opens path and returns a ReaderSource positioned at offset,
// bound to ctx. The caller closes the returned file. A nil fsys means the
// local filesystem.
func OpenSource(ctx context.Context, fsys FileSystem, path string, offset int64) (*ReaderSource, io.Closer, error) {
	if fsys == nil {
		fsys = defaultFS
	}
	st, err := fsys.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if st.IsDir() {
		return nil, nil, fmt.Errorf("%s: is a directory", path)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if offset > 0 {
		if s, ok := f.(io.Seeker); ok {
			if _, err := s.Seek(offset, io.SeekStart); err != nil {
				_ = f.Close()
				return nil, nil, fmt.Errorf("seek to %d in %s: %w", offset, path, err)
			}
		} else if _, err := io.CopyN(io.Discard, f, offset); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("discard %d bytes of %s: %w", offset, path, err)
		}
	}
	return NewReaderSource(f, WithContext(ctx)), f, nil
}
