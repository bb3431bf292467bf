package fatreader

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

// errReaderAt fails every read with err after returning n bytes.
type errReaderAt struct {
	n   int
	err error
}

func (r errReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return r.n, r.err
}

var errDevice = errors.New("device failure")

func TestSource_ReadExact(t *testing.T) {
	data := []byte("0123456789")

	tests := []struct {
		name    string
		src     Source
		offset  int64
		length  int
		want    []byte
		wantErr error
	}{
		{name: "middle", src: NewSource(bytes.NewReader(data)), offset: 2, length: 3, want: []byte("234")},
		{name: "up to the end", src: NewSource(bytes.NewReader(data)), offset: 5, length: 5, want: []byte("56789")},
		{name: "zero length", src: NewSource(bytes.NewReader(data)), offset: 0, length: 0, want: []byte{}},
		{name: "over the end", src: NewSource(bytes.NewReader(data)), offset: 8, length: 5, wantErr: ErrTruncatedImage},
		{name: "behind the end", src: NewSource(bytes.NewReader(data)), offset: 20, length: 1, wantErr: ErrTruncatedImage},
		{name: "device error", src: NewSource(errReaderAt{n: 0, err: errDevice}), offset: 0, length: 1, wantErr: errDevice},
		{name: "short read without error", src: NewSource(errReaderAt{n: 1, err: nil}), offset: 0, length: 4, wantErr: ErrTruncatedImage},
		{name: "section", src: NewSectionSource(bytes.NewReader(data), 4, 4), offset: 1, length: 3, want: []byte("567")},
		{name: "over the section end", src: NewSectionSource(bytes.NewReader(data), 4, 4), offset: 2, length: 3, wantErr: ErrTruncatedImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.ReadExact(tt.offset, tt.length)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadExact() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadExact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSource_ReadExactInvalid(t *testing.T) {
	src := NewSource(bytes.NewReader(nil))
	if _, err := src.ReadExact(-1, 1); err == nil {
		t.Errorf("ReadExact() with negative offset error = nil, want error")
	}
	if _, err := src.ReadExact(0, -1); err == nil {
		t.Errorf("ReadExact() with negative length error = nil, want error")
	}
}

func TestOpenImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/images/floppy.img", floppyGeometry().bootSector(), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "image", path: "/images/floppy.img"},
		{name: "missing", path: "/images/missing.img", wantErr: true},
		{name: "directory", path: "/images", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := OpenImage(fs, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenImage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer f.Close()

			bs, err := ReadBootSectorFrom(NewSource(f))
			if err != nil {
				t.Fatalf("ReadBootSectorFrom() error = %v", err)
			}
			if bs.OEMName() != "MSDOS5" {
				t.Errorf("OEMName() = %v, want %v", bs.OEMName(), "MSDOS5")
			}

			// The file is also usable as io.ReadSeeker.
			if _, err := ReadBootSector(f); err != nil {
				t.Errorf("ReadBootSector() error = %v", err)
			}
			var _ io.ReadSeeker = f
		})
	}
}
