package results

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRetrieve(t *testing.T) {
	tb := NewTable([]string{"C", "n", "R2fit", "R2all"})

	require.NoError(t, tb.Record("a.txt", map[string]float64{"C": 2, "n": 0.3, "R2fit": 0.99, "R2all": 0.98}))
	require.NoError(t, tb.Record("b.txt", map[string]float64{"C": 3, "n": 0.4, "R2fit": 0.97, "R2all": 0.96}))

	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, []string{"a.txt", "b.txt"}, tb.IDs())

	row, ok := tb.Row("a.txt")
	require.True(t, ok)
	assert.Equal(t, []float64{2, 0.3, 0.99, 0.98}, row)
}

// Recording under an existing identifier overwrites the row in place.
func TestRecordOverwriteByKey(t *testing.T) {
	tb := NewTable([]string{"C", "n"})

	require.NoError(t, tb.Record("a.txt", map[string]float64{"C": 1, "n": 0.1}))
	require.NoError(t, tb.Record("b.txt", map[string]float64{"C": 2, "n": 0.2}))
	require.NoError(t, tb.Record("a.txt", map[string]float64{"C": 9, "n": 0.9}))

	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, []string{"a.txt", "b.txt"}, tb.IDs())

	row, _ := tb.Row("a.txt")
	assert.Equal(t, []float64{9, 0.9}, row)
}

func TestRecordColumnMismatch(t *testing.T) {
	tb := NewTable([]string{"C", "n"})

	err := tb.Record("a.txt", map[string]float64{"C": 1})
	assert.ErrorIs(t, err, ErrColumnMismatch)

	err = tb.Record("a.txt", map[string]float64{"C": 1, "m": 0.3})
	assert.ErrorIs(t, err, ErrColumnMismatch)

	assert.Equal(t, 0, tb.Len())
}

func TestRender(t *testing.T) {
	tb := NewTable([]string{"C", "n"})
	require.NoError(t, tb.Record("a.txt", map[string]float64{"C": 2, "n": 0.3}))
	require.NoError(t, tb.Record("b.txt", map[string]float64{"C": math.NaN(), "n": 0.4}))

	var buf bytes.Buffer
	require.NoError(t, tb.Render(&buf, 4))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "dataset")
	assert.Contains(t, lines[0], "C")
	assert.Contains(t, lines[1], "2.0000")
	assert.Contains(t, lines[1], "0.3000")
	// degenerate statistics stay visible
	assert.Contains(t, lines[2], "NaN")
}

func TestWriteCSV(t *testing.T) {
	tb := NewTable([]string{"C", "n"})
	require.NoError(t, tb.Record("a.txt", map[string]float64{"C": 2, "n": 0.3}))

	var buf bytes.Buffer
	require.NoError(t, tb.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "dataset,C,n", lines[0])
	assert.Equal(t, "a.txt,2,0.3", lines[1])
}
