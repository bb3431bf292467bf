package fatreader

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// Source provides random access to the bytes of an image.
type Source interface {
	// ReadExact reads exactly length bytes starting at offset.
	// It fails with ErrTruncatedImage if the image ends before.
	ReadExact(offset int64, length int) ([]byte, error)
}

type readerAtSource struct {
	r io.ReaderAt
}

// NewSource creates a Source reading from r, e.g. an *os.File, an afero.File or a bytes.Reader.
func NewSource(r io.ReaderAt) Source {
	return readerAtSource{r: r}
}

func (s readerAtSource) ReadExact(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, checkpoint.From(fmt.Errorf("invalid read of %d bytes at offset %d", length, offset))
	}

	buf := make([]byte, length)
	n, err := s.r.ReadAt(buf, offset)
	if n == length {
		// ReadAt may return io.EOF together with the last bytes.
		return buf, nil
	}
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, checkpoint.Wrap(fmt.Errorf("read %d of %d bytes at offset %d", n, length, offset), ErrTruncatedImage)
	}
	return nil, checkpoint.From(err)
}

// NewSectionSource creates a Source which only sees size bytes of r starting at base.
// It is used to address a partition inside of a disk image.
func NewSectionSource(r io.ReaderAt, base, size int64) Source {
	return readerAtSource{r: io.NewSectionReader(r, base, size)}
}

// OpenImage opens the image at path read only.
func OpenImage(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, checkpoint.From(err)
	}
	if stat.IsDir() {
		f.Close()
		return nil, checkpoint.From(&os.PathError{Op: "open", Path: path, Err: fmt.Errorf("is a directory")})
	}

	return f, nil
}
