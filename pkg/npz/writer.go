package npz

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
)

// Float32 is the little-endian float32 dtype descriptor.
const Float32 = "<f4"

// Writer produces .npz archives the way numpy.savez does: one stored .npy
// member per array.
type Writer struct {
	zw *zip.Writer
}

// NewWriter starts an archive on w. Call Close to flush the directory.
func NewWriter(w io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(w)}
}

// WriteArray adds an array with the given numpy dtype descriptor, e.g. "<f4".
// data must hold the C-order payload.
func (w *Writer) WriteArray(name, dtype string, shape []int, data []byte) error {
	if name == "" {
		return errors.New("array name is required")
	}
	member, err := w.zw.CreateHeader(&zip.FileHeader{Name: name + ".npy", Method: zip.Store})
	if err != nil {
		return errors.Wrapf(err, "failed to create member %q", name)
	}
	if err := writeHeader(member, dtype, shape); err != nil {
		return errors.WithMessagef(err, "array %q", name)
	}
	if _, err := member.Write(data); err != nil {
		return errors.Wrapf(err, "failed to write data for %q", name)
	}
	return nil
}

// Close finishes the archive.
func (w *Writer) Close() error {
	return w.zw.Close()
}

// WriteZeros writes a float32 archive holding a zero-filled array for every
// entry, optional ones included, in its export shape. The result loads in the
// inference target before any training has happened.
func WriteZeros(w io.Writer, entries []exportkeys.Entry) error {
	archive := NewWriter(w)
	for _, entry := range entries {
		size := 1
		for _, dim := range entry.Shape {
			size *= dim
		}
		if err := archive.WriteArray(entry.Key, Float32, entry.Shape, make([]byte, 4*size)); err != nil {
			return err
		}
	}
	return errors.Wrap(archive.Close(), "failed to finish archive")
}
