package npz

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

type testArray struct {
	name  string
	shape []int
}

func buildArchive(t *testing.T, arrays ...testArray) *bytes.Reader {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, a := range arrays {
		size := 1
		for _, dim := range a.shape {
			size *= dim
		}
		require.NoError(t, w.WriteArray(a.name, "<f4", a.shape, make([]byte, 4*size)))
	}
	require.NoError(t, w.Close())
	return bytes.NewReader(buf.Bytes())
}

func readArchive(t *testing.T, arrays ...testArray) *Archive {
	t.Helper()

	r := buildArchive(t, arrays...)
	archive, err := Read(r, r.Size())
	require.NoError(t, err)
	return archive
}

func TestParseHeader(t *testing.T) {
	array, err := parseHeader("{'descr': '<f8', 'fortran_order': True, 'shape': (3L, 4L), }")
	require.NoError(t, err)
	assert.Equal(t, "<f8", array.DType)
	assert.True(t, array.FortranOrder)
	assert.Equal(t, []int{3, 4}, array.Shape)

	scalar, err := parseHeader("{'descr': '<i4', 'fortran_order': False, 'shape': (), }")
	require.NoError(t, err)
	assert.Equal(t, []int{}, scalar.Shape)
	assert.Equal(t, 1, scalar.Size())

	_, err = parseHeader("{'fortran_order': False, 'shape': (1,), }")
	require.Error(t, err)
}

func TestWriteHeader_IsAligned(t *testing.T) {
	for _, shape := range [][]int{{}, {8}, {8, 3, 3, 3}, {10, 288}} {
		var buf bytes.Buffer
		require.NoError(t, writeHeader(&buf, "<f4", shape))
		assert.Zero(t, buf.Len()%16, "shape %v", shape)

		array, err := readHeader(&buf)
		require.NoError(t, err)
		assert.Equal(t, shape, array.Shape)
		assert.Equal(t, "<f4", array.DType)
	}
}

func TestReadHeader_RejectsBadMagic(t *testing.T) {
	_, err := readHeader(bytes.NewReader([]byte("\x93NOTPY\x01\x00")))
	require.ErrorContains(t, err, "magic string mismatch")
}

func TestRead_ListsArrays(t *testing.T) {
	archive := readArchive(t,
		testArray{"M.l0.weight", []int{10, 288}},
		testArray{"M.c0.weight", []int{8, 3, 3, 3}},
	)

	assert.Equal(t, 2, archive.Len())
	assert.Equal(t, []string{"M.c0.weight", "M.l0.weight"}, archive.Names())

	array, ok := archive.Get("M.c0.weight")
	require.True(t, ok)
	assert.Equal(t, []int{8, 3, 3, 3}, array.Shape)
	assert.Equal(t, 216, array.Size())

	_, ok = archive.Get("M.c0.bias")
	assert.False(t, ok)
}

func TestOpen_FromDisk(t *testing.T) {
	r := buildArchive(t, testArray{"M.l0.bias", []int{10}})
	path := filepath.Join(t.TempDir(), "weights.npz")
	require.NoError(t, os.WriteFile(path, readAll(t, r), 0o644))

	archive, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"M.l0.bias"}, archive.Names())

	_, err = Open(filepath.Join(t.TempDir(), "missing.npz"))
	require.Error(t, err)
}

func TestVerify_Scenario(t *testing.T) {
	entries := exportkeys.Entries(testsupport.ScenarioModels(t)...)

	archive := readArchive(t,
		testArray{"M.c0.weight", []int{8, 3, 3, 3}},
		testArray{"M.l0.weight", []int{2880}},
		testArray{"M.l0.bias", []int{10}},
		testArray{"step", []int{}},
	)

	report := Verify(archive, entries)
	assert.True(t, report.OK())
	require.NoError(t, report.Err())
	assert.Equal(t, []string{"M.c0.weight", "M.l0.weight", "M.l0.bias"}, report.Present)
	assert.Equal(t, []string{"M.c0.bias"}, report.MissingOptional)
	assert.Equal(t, []string{"M.l0.weight"}, report.Reshaped)
	assert.Equal(t, []string{"step"}, report.Extra)
	assert.Empty(t, report.MissingRequired)
}

func TestWriteZeros_MatchesExportKeys(t *testing.T) {
	entries := exportkeys.Entries(testsupport.ScenarioModels(t)...)

	var buf bytes.Buffer
	require.NoError(t, WriteZeros(&buf, entries))

	archive, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, len(entries), archive.Len())

	report := Verify(archive, entries)
	require.NoError(t, report.Err())
	assert.Len(t, report.Present, len(entries))
	assert.Empty(t, report.MissingOptional)
	assert.Empty(t, report.Reshaped)
	assert.Empty(t, report.Extra)

	bias, ok := archive.Get("M.c0.bias")
	require.True(t, ok)
	assert.Equal(t, Float32, bias.DType)
	assert.Equal(t, []int{8}, bias.Shape)
}

func TestVerify_FlagsMissingAndMismatched(t *testing.T) {
	entries := exportkeys.Entries(testsupport.ScenarioModels(t)...)

	archive := readArchive(t,
		testArray{"M.c0.weight", []int{8, 3, 5, 5}},
		testArray{"M.c0.bias", []int{8}},
		testArray{"M.l0.bias", []int{10}},
	)

	report := Verify(archive, entries)
	assert.False(t, report.OK())
	assert.Equal(t, []string{"M.l0.weight"}, report.MissingRequired)
	require.Len(t, report.ShapeMismatches, 1)
	assert.Equal(t, Mismatch{Key: "M.c0.weight", Expected: []int{8, 3, 3, 3}, Actual: []int{8, 3, 5, 5}}, report.ShapeMismatches[0])

	err := report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing M.l0.weight")
	assert.Contains(t, err.Error(), "M.c0.weight: expected [8 3 3 3], got [8 3 5 5]")
}

func readAll(t *testing.T, r *bytes.Reader) []byte {
	t.Helper()
	out := make([]byte, r.Size())
	_, err := r.ReadAt(out, 0)
	require.NoError(t, err)
	return out
}
