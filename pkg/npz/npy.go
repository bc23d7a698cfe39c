package npz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const npyMagic = "\x93NUMPY"

// Array describes one .npy member of an archive.
type Array struct {
	Name         string
	DType        string
	Shape        []int
	FortranOrder bool
}

// Size is the number of elements the array holds.
func (a Array) Size() int {
	total := 1
	for _, dim := range a.Shape {
		total *= dim
	}
	return total
}

var (
	reDescr   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	reFortran = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	reShape   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// readHeader decodes the .npy preamble from r, leaving r positioned at the
// start of the array data.
func readHeader(r io.Reader) (Array, error) {
	magic := make([]byte, len(npyMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return Array{}, errors.Wrap(err, "failed to read magic string")
	}
	if string(magic) != npyMagic {
		return Array{}, errors.New("invalid .npy file format: magic string mismatch")
	}

	version := make([]byte, 2)
	if _, err := io.ReadFull(r, version); err != nil {
		return Array{}, errors.Wrap(err, "failed to read version")
	}

	var headerLen int
	switch {
	case version[0] == 1:
		lenBytes := make([]byte, 2)
		if _, err := io.ReadFull(r, lenBytes); err != nil {
			return Array{}, errors.Wrap(err, "failed to read header length")
		}
		headerLen = int(binary.LittleEndian.Uint16(lenBytes))
	case version[0] >= 2:
		lenBytes := make([]byte, 4)
		if _, err := io.ReadFull(r, lenBytes); err != nil {
			return Array{}, errors.Wrap(err, "failed to read header length")
		}
		headerLen = int(binary.LittleEndian.Uint32(lenBytes))
		if headerLen > 1<<20 {
			return Array{}, errors.Errorf("header length %d is implausibly large", headerLen)
		}
	default:
		return Array{}, errors.Errorf("unsupported .npy version: %d.%d", version[0], version[1])
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return Array{}, errors.Wrap(err, "failed to read header")
	}
	return parseHeader(string(header))
}

// parseHeader reads the Python dict literal of a .npy header, e.g.
// "{'descr': '<f4', 'fortran_order': False, 'shape': (8, 3), }".
func parseHeader(header string) (Array, error) {
	var out Array

	m := reDescr.FindStringSubmatch(header)
	if len(m) < 2 {
		return Array{}, errors.Errorf("could not find 'descr' in header: %q", header)
	}
	out.DType = m[1]

	m = reFortran.FindStringSubmatch(header)
	if len(m) < 2 {
		return Array{}, errors.Errorf("could not find 'fortran_order' in header: %q", header)
	}
	out.FortranOrder = m[1] == "True"

	m = reShape.FindStringSubmatch(header)
	if len(m) < 2 {
		return Array{}, errors.Errorf("could not find 'shape' in header: %q", header)
	}
	out.Shape = []int{}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// Python 2 era files write longs as "3L".
		part = strings.TrimSuffix(part, "L")
		dim, err := strconv.Atoi(part)
		if err != nil {
			return Array{}, errors.Wrapf(err, "invalid shape value %q in header", part)
		}
		out.Shape = append(out.Shape, dim)
	}
	return out, nil
}

// writeHeader emits a version 1.0 preamble padded to a 16-byte boundary.
func writeHeader(w io.Writer, dtype string, shape []int) error {
	var tuple string
	switch len(shape) {
	case 0:
		tuple = "()"
	case 1:
		tuple = fmt.Sprintf("(%d,)", shape[0])
	default:
		dims := make([]string, len(shape))
		for i, dim := range shape {
			dims[i] = strconv.Itoa(dim)
		}
		tuple = "(" + strings.Join(dims, ", ") + ")"
	}

	var header bytes.Buffer
	fmt.Fprintf(&header, "{'descr': '%s', 'fortran_order': False, 'shape': %s, }", dtype, tuple)
	for (len(npyMagic)+4+header.Len()+1)%16 != 0 {
		header.WriteByte(' ')
	}
	header.WriteByte('\n')

	if header.Len() > 0xFFFF {
		return errors.Errorf("header of %d bytes does not fit a version 1.0 file", header.Len())
	}

	preamble := make([]byte, 0, len(npyMagic)+4)
	preamble = append(preamble, npyMagic...)
	preamble = append(preamble, 1, 0)
	preamble = binary.LittleEndian.AppendUint16(preamble, uint16(header.Len()))

	if _, err := w.Write(preamble); err != nil {
		return errors.Wrap(err, "failed to write preamble")
	}
	if _, err := w.Write(header.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	return nil
}
