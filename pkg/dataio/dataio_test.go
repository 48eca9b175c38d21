package dataio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creep.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadWindowBasic(t *testing.T) {
	path := writeFile(t, `# time  depth
0.5  0.10
1.0  0.20
2.0  0.30
5.0  0.40
9.0  0.50
12.0 0.60
`)

	ts, def, err := ReadWindow(path, Format{}, 1.0, 8.0)
	require.NoError(t, err)

	// window is [1, 9]; 0.5 and 12 fall outside
	assert.Equal(t, []float64{1, 2, 5, 9}, ts)
	assert.Equal(t, []float64{0.20, 0.30, 0.40, 0.50}, def)
}

func TestReadWindowColumnsAndSkip(t *testing.T) {
	path := writeFile(t, `index time depth force
1 1.0 0.2 100
2 2.0 0.3 100
3 3.0 0.4 100
`)

	f := Format{TimeCol: 1, DeformationCol: 2, SkipRows: 1}
	ts, def, err := ReadWindow(path, f, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, ts)
	assert.Equal(t, []float64{0.2, 0.3, 0.4}, def)
}

// The zero-value Format reads time from column 0 and deformation from
// column 1; an explicit layout with deformation in column 0 stays as given.
func TestReadWindowDefaultColumns(t *testing.T) {
	path := writeFile(t, "1 0.5\n2 0.6\n")

	ts, def, err := ReadWindow(path, Format{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, ts)
	assert.Equal(t, []float64{0.5, 0.6}, def)

	ts, def, err = ReadWindow(path, Format{TimeCol: 1, DeformationCol: 0}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, ts)
	assert.Equal(t, []float64{1, 2}, def)
}

// Unit conversion applies after windowing: the window bounds are in
// file-native units.
func TestReadWindowUnitScales(t *testing.T) {
	// time in minutes, deformation in millimetres
	path := writeFile(t, `1 0.001
2 0.002
5 0.003
`)

	f := Format{TimeToSeconds: 60, DeformationToUm: 1000}
	ts, def, err := ReadWindow(path, f, 1, 1) // native window [1,2]
	require.NoError(t, err)
	assert.Equal(t, []float64{60, 120}, ts)
	assert.Equal(t, []float64{1, 2}, def)
}

func TestReadWindowCommentsAndBlankLines(t *testing.T) {
	path := writeFile(t, `# header
1 0.1

// also ignored
2 0.2
`)

	ts, _, err := ReadWindow(path, Format{Comment: "//"}, 0, 10)
	require.Error(t, err) // '#' line no longer a comment
	assert.ErrorIs(t, err, ErrBadFormat)

	ts, _, err = ReadWindow(path, Format{Comment: "#", SkipRows: 4}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, ts)
}

func TestReadWindowEmpty(t *testing.T) {
	path := writeFile(t, "1 0.1\n2 0.2\n")

	_, _, err := ReadWindow(path, Format{}, 100, 10)
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

func TestReadWindowBadFormat(t *testing.T) {
	path := writeFile(t, "1 0.1\n2\n")
	_, _, err := ReadWindow(path, Format{}, 0, 10)
	assert.ErrorIs(t, err, ErrBadFormat)

	path = writeFile(t, "1 abc\n")
	_, _, err = ReadWindow(path, Format{}, 0, 10)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestReadWindowMissingFile(t *testing.T) {
	_, _, err := ReadWindow(filepath.Join(t.TempDir(), "nope.txt"), Format{}, 0, 10)
	assert.Error(t, err)
}
