package dataio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Format describes the layout of a creep datafile. The zero value reads the
// first two columns, skips nothing, treats '#' lines as comments and assumes
// the file is already in seconds and micrometres.
type Format struct {
	// TimeCol and DeformationCol are zero-based column indices. When both
	// are left zero, deformation is read from column 1.
	TimeCol        int
	DeformationCol int

	// Comment is the prefix marking ignored lines. Empty means "#".
	Comment string

	// SkipRows drops this many leading lines (e.g. a header) before parsing.
	SkipRows int

	// TimeToSeconds and DeformationToUm are multiplicative unit conversions
	// applied after windowing. Zero means 1 (no conversion).
	TimeToSeconds   float64
	DeformationToUm float64
}

func (f Format) withDefaults() Format {
	if f.TimeCol == 0 && f.DeformationCol == 0 {
		f.DeformationCol = 1
	}
	if f.Comment == "" {
		f.Comment = "#"
	}
	if f.TimeToSeconds == 0 {
		f.TimeToSeconds = 1
	}
	if f.DeformationToUm == 0 {
		f.DeformationToUm = 1
	}
	return f
}

// ReadWindow reads the (time, deformation) columns of a creep datafile and
// keeps only the holding interval [tStart, tStart+tHold]. The window bounds
// are compared against file-native time values; both columns are converted
// to seconds and micrometres afterwards.
//
// Returns ErrEmptyWindow when the file parses but no point falls inside the
// window, and ErrBadFormat (wrapped with the line number) when a data line
// does not parse.
func ReadWindow(path string, format Format, tStart, tHold float64) (t, def []float64, err error) {
	f := format.withDefaults()

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataio: %w", err)
	}
	defer file.Close()

	need := f.TimeCol
	if f.DeformationCol > need {
		need = f.DeformationCol
	}
	tEnd := tStart + tHold

	sc := bufio.NewScanner(file)
	line := 0
	for sc.Scan() {
		line++
		if line <= f.SkipRows {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, f.Comment) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) <= need {
			return nil, nil, fmt.Errorf("%w (line %d)", ErrBadFormat, line)
		}
		tv, err := strconv.ParseFloat(fields[f.TimeCol], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w (line %d)", ErrBadFormat, line)
		}
		dv, err := strconv.ParseFloat(fields[f.DeformationCol], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w (line %d)", ErrBadFormat, line)
		}
		if tv < tStart || tv > tEnd {
			continue
		}
		t = append(t, tv*f.TimeToSeconds)
		def = append(def, dv*f.DeformationToUm)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("dataio: %w", err)
	}
	if len(t) == 0 {
		return nil, nil, ErrEmptyWindow
	}
	return t, def, nil
}
