package npz

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Archive is the directory of a .npz file.
type Archive struct {
	arrays map[string]Array
	names  []string
}

// Open reads the array directory of the .npz file at filePath.
func Open(filePath string) (*Archive, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open .npz file %q", filePath)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat .npz file %q", filePath)
	}
	return Read(file, info.Size())
}

// Read decodes the array directory from a zip payload of the given size.
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zip reader for .npz")
	}

	archive := &Archive{arrays: make(map[string]Array)}
	for _, f := range zipReader.File {
		cleanPath := path.Clean(f.Name)
		if path.IsAbs(cleanPath) || strings.HasPrefix(cleanPath, "..") {
			return nil, errors.Errorf("invalid path in .npz archive: %q (normalized to %q)", f.Name, cleanPath)
		}
		if !strings.HasSuffix(f.Name, ".npy") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %q within .npz", f.Name)
		}
		array, err := readHeader(rc)
		_ = rc.Close()
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to read array %q from .npz", f.Name)
		}

		array.Name = strings.TrimSuffix(f.Name, ".npy")
		archive.arrays[array.Name] = array
		archive.names = append(archive.names, array.Name)
	}
	sort.Strings(archive.names)
	return archive, nil
}

// Names lists the arrays in the archive, sorted.
func (a *Archive) Names() []string {
	return append([]string(nil), a.names...)
}

// Get looks up one array.
func (a *Archive) Get(name string) (Array, bool) {
	array, ok := a.arrays[name]
	if !ok {
		return Array{}, false
	}
	array.Shape = append([]int(nil), array.Shape...)
	return array, true
}

// Len is the number of arrays in the archive.
func (a *Archive) Len() int {
	return len(a.names)
}
