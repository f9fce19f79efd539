package sample

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"
)

// ErrEmpty is returned when there are no samples.
var ErrEmpty = errors.New("no samples")

// ErrRagged is returned when the sample rows don't have the same number of columns.
var ErrRagged = errors.New("rows of different length")

// FromRows builds the sample matrix from its rows.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row #%d has %d columns instead of %d: %w", i+1, len(row), cols, ErrRagged)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Rows returns the rows of the matrix.
func Rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows
}

// ReadFile reads the samples from the given file.
func ReadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open samples file '%s': %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses one sample per line.
// Values are separated by commas, semicolons or white space,
// empty lines and lines starting with # are skipped.
func Read(r io.Reader) (*mat.Dense, error) {
	rows := make([][]float64, 0)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, separator)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read samples: %w", err)
	}

	return FromRows(rows)
}

func separator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}
