package timeseries

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// Difference returns the day-over-day deltas of a series block. Column j of
// the result is block[j] - block[j-1]; the value before the first column is
// taken to be zero, so column 0 is copied unchanged. Column names and types
// are preserved.
func Difference(block dataframe.DataFrame) dataframe.DataFrame {
	if block.Err != nil {
		return block
	}
	rows, cols := block.Dims()
	if rows == 0 || cols == 0 {
		return block.Copy()
	}

	cur := mat.DenseCopyOf(matrix{block})
	prev := mat.NewDense(rows, cols, nil)
	if cols > 1 {
		prev.Slice(0, rows, 1, cols).(*mat.Dense).Copy(cur.Slice(0, rows, 0, cols-1))
	}
	var delta mat.Dense
	delta.Sub(cur, prev)

	names := block.Names()
	out := make([]series.Series, cols)
	for j, name := range names {
		out[j] = series.New(mat.Col(nil, j, &delta), block.Col(name).Type(), name)
	}
	return dataframe.New(out...)
}

// Velocity returns t with its series block replaced by its first difference.
func Velocity(t Table) (Table, error) {
	frame := Join(Metadata(t.Frame), Difference(Series(t.Frame)))
	if frame.Err != nil {
		return Table{}, fmt.Errorf("failed to derive velocity: %w", frame.Err)
	}
	return Table{Frame: frame, Dates: t.Dates}, nil
}

// Acceleration returns the second difference of t.
func Acceleration(t Table) (Table, error) {
	v, err := Velocity(t)
	if err != nil {
		return Table{}, err
	}
	a, err := Velocity(v)
	if err != nil {
		return Table{}, fmt.Errorf("failed to derive acceleration: %w", err)
	}
	return a, nil
}
