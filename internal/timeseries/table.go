package timeseries

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	// RegionColumn is the canonical name of the country/region column.
	RegionColumn = "country"

	// MetadataWidth is the number of leading non-date columns:
	// province/state, country/region, latitude and longitude.
	MetadataWidth = 4

	// DefaultDateLayout matches the CSSE headers, e.g. "1/22/20".
	DefaultDateLayout = "1/2/06"
)

// Table is a Time-Series Table. Dates[j] labels the series column at
// position MetadataWidth+j of Frame.
type Table struct {
	Frame dataframe.DataFrame
	Dates []time.Time
}

// metadataTypes pins the CSSE metadata columns so sparse columns are not
// type-detected from a handful of values.
var metadataTypes = map[string]series.Type{
	"Province/State": series.String,
	"Country/Region": series.String,
	"Lat":            series.Float,
	"Long":           series.Float,
}

// Load reads the dataset at path. It is re-read on every call.
func Load(path, layout string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	t, err := Read(f, layout)
	if err != nil {
		return Table{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// Read parses a delimited time-series table, renames the region column to
// RegionColumn and orders the date columns chronologically.
func Read(r io.Reader, layout string) (Table, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	df := dataframe.ReadCSV(r, dataframe.WithTypes(metadataTypes))
	if df.Err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", df.Err)
	}

	names := df.Names()
	if len(names) <= MetadataWidth {
		return Table{}, fmt.Errorf("%w: need %d metadata columns and at least one date, got %d columns",
			ErrSchema, MetadataWidth, len(names))
	}
	if names[1] != RegionColumn {
		df = df.Rename(RegionColumn, names[1])
		if df.Err != nil {
			return Table{}, fmt.Errorf("failed to rename region column: %w", df.Err)
		}
	}

	dates, order, err := parseDates(names[MetadataWidth:], layout)
	if err != nil {
		return Table{}, err
	}
	if order != nil {
		idx := make([]int, 0, len(names))
		for i := 0; i < MetadataWidth; i++ {
			idx = append(idx, i)
		}
		for _, j := range order {
			idx = append(idx, MetadataWidth+j)
		}
		df = df.Select(idx)
		if df.Err != nil {
			return Table{}, fmt.Errorf("failed to reorder date columns: %w", df.Err)
		}
	}
	return Table{Frame: df, Dates: dates}, nil
}

// parseDates returns the headers as ascending dates. order is nil when the
// headers were already ascending, otherwise order[k] is the original
// position of the k-th date.
func parseDates(headers []string, layout string) ([]time.Time, []int, error) {
	dates := make([]time.Time, len(headers))
	sorted := true
	for j, h := range headers {
		d, err := time.Parse(layout, h)
		if err != nil {
			return nil, nil, &DateHeaderError{Column: MetadataWidth + j, Header: h, Err: err}
		}
		dates[j] = d
		if j > 0 && d.Before(dates[j-1]) {
			sorted = false
		}
	}
	if sorted {
		return dates, nil, nil
	}

	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dates[order[a]].Before(dates[order[b]])
	})
	ordered := make([]time.Time, len(dates))
	for k, j := range order {
		ordered[k] = dates[j]
	}
	return ordered, order, nil
}
