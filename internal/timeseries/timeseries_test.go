package timeseries

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20,1/24/20,1/25/20
,Israel,31.0,35.0,10,10,15,20
,Italy,41.9,12.6,1,2,4,8
Martinique,France,14.6,-61.0,0,1,1,2
,France,46.2,2.2,3,4,6,9
`

func readFixture(t *testing.T, csv string) Table {
	t.Helper()
	table, err := Read(strings.NewReader(csv), DefaultDateLayout)
	require.NoError(t, err)
	return table
}

func rowValues(df dataframe.DataFrame, i int) []float64 {
	vals := make([]float64, df.Ncol())
	for j := range vals {
		vals[j] = df.Elem(i, j).Float()
	}
	return vals
}

func TestRead(t *testing.T) {
	table := readFixture(t, fixture)

	rows, cols := table.Frame.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 8, cols)
	assert.Equal(t, RegionColumn, table.Frame.Names()[1])
	assert.Equal(t, "1/22/20", table.Frame.Names()[MetadataWidth])

	require.Len(t, table.Dates, 4)
	assert.Equal(t, time.Date(2020, time.January, 22, 0, 0, 0, 0, time.UTC), table.Dates[0])
	assert.Equal(t, time.Date(2020, time.January, 25, 0, 0, 0, 0, time.UTC), table.Dates[3])
}

func TestReadOrdersDates(t *testing.T) {
	csv := `Province/State,Country/Region,Lat,Long,1/24/20,1/22/20,1/23/20
,Israel,31.0,35.0,15,10,12
`
	table := readFixture(t, csv)

	assert.Equal(t, []string{"1/22/20", "1/23/20", "1/24/20"}, table.Frame.Names()[MetadataWidth:])
	assert.True(t, table.Dates[0].Before(table.Dates[1]))
	assert.True(t, table.Dates[1].Before(table.Dates[2]))
	assert.Equal(t, []float64{10, 12, 15}, rowValues(Series(table.Frame), 0))
}

func TestReadBadDateHeader(t *testing.T) {
	csv := `Province/State,Country/Region,Lat,Long,1/22/20,total
,Israel,31.0,35.0,10,10
`
	_, err := Read(strings.NewReader(csv), DefaultDateLayout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDateHeader)

	var headerErr *DateHeaderError
	require.True(t, errors.As(err, &headerErr))
	assert.Equal(t, 5, headerErr.Column)
	assert.Equal(t, "total", headerErr.Header)
}

func TestReadRequiresDateColumns(t *testing.T) {
	csv := `Province/State,Country/Region,Lat,Long
,Israel,31.0,35.0
`
	_, err := Read(strings.NewReader(csv), DefaultDateLayout)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultDateLayout)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPartitionRoundTrip(t *testing.T) {
	table := readFixture(t, fixture)

	meta := Metadata(table.Frame)
	block := Series(table.Frame)
	require.NoError(t, meta.Err)
	require.NoError(t, block.Err)
	assert.Equal(t, MetadataWidth, meta.Ncol())
	assert.Equal(t, 4, block.Ncol())

	joined := Join(meta, block)
	require.NoError(t, joined.Err)
	assert.Equal(t, table.Frame.Names(), joined.Names())
	assert.Equal(t, table.Frame.Records(), joined.Records())
}

func TestDifference(t *testing.T) {
	block := Series(readFixture(t, fixture).Frame)

	velocity := Difference(block)
	require.NoError(t, velocity.Err)
	assert.Equal(t, []float64{10, 0, 5, 5}, rowValues(velocity, 0))
	assert.Equal(t, block.Names(), velocity.Names())

	acceleration := Difference(velocity)
	require.NoError(t, acceleration.Err)
	assert.Equal(t, []float64{10, -10, 5, 0}, rowValues(acceleration, 0))
}

func TestDifferenceKeepsShape(t *testing.T) {
	block := Series(readFixture(t, fixture).Frame)
	rows, cols := block.Dims()

	gotRows, gotCols := Difference(block).Dims()
	assert.Equal(t, rows, gotRows)
	assert.Equal(t, cols, gotCols)
}

func TestDifferenceZeroBlock(t *testing.T) {
	block := dataframe.New(
		series.New([]int{0, 0}, series.Int, "1/22/20"),
		series.New([]int{0, 0}, series.Int, "1/23/20"),
		series.New([]int{0, 0}, series.Int, "1/24/20"),
	)

	got := Difference(block)
	require.NoError(t, got.Err)
	for i := 0; i < 2; i++ {
		assert.Equal(t, []float64{0, 0, 0}, rowValues(got, i))
	}
}

func TestDifferenceSingleColumn(t *testing.T) {
	block := dataframe.New(series.New([]float64{7, 3}, series.Float, "1/22/20"))

	got := Difference(block)
	require.NoError(t, got.Err)
	assert.Equal(t, 7.0, got.Elem(0, 0).Float())
	assert.Equal(t, 3.0, got.Elem(1, 0).Float())
}

func TestDifferenceCumulativeSumRoundTrip(t *testing.T) {
	block := Series(readFixture(t, fixture).Frame)
	delta := Difference(block)

	for i := 0; i < block.Nrow(); i++ {
		var running float64
		restored := make([]float64, 0, delta.Ncol())
		for _, d := range rowValues(delta, i) {
			running += d
			restored = append(restored, running)
		}
		if diff := cmp.Diff(rowValues(block, i), restored); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestVelocityAndAcceleration(t *testing.T) {
	table := readFixture(t, fixture)

	velocity, err := Velocity(table)
	require.NoError(t, err)
	assert.Equal(t, table.Frame.Names(), velocity.Frame.Names())
	assert.Equal(t, table.Dates, velocity.Dates)
	assert.Equal(t, Metadata(table.Frame).Records(), Metadata(velocity.Frame).Records())

	acceleration, err := Acceleration(table)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1, 2}, rowValues(Series(acceleration.Frame), 1))
}

func TestSelect(t *testing.T) {
	frame := readFixture(t, fixture).Frame

	t.Run("not found yields zero rows", func(t *testing.T) {
		sel, err := Select(frame, "Atlantis")
		require.NoError(t, err)
		assert.Equal(t, NotFound, sel.Match)
		assert.Equal(t, 0, sel.Rows.Nrow())

		_, err = sel.Values(PolicySum)
		assert.ErrorIs(t, err, ErrCountryNotFound)
	})

	t.Run("exact match only", func(t *testing.T) {
		sel, err := Select(frame, "israel")
		require.NoError(t, err)
		assert.Equal(t, NotFound, sel.Match)
	})

	t.Run("unique", func(t *testing.T) {
		sel, err := Select(frame, "Israel")
		require.NoError(t, err)
		assert.Equal(t, Unique, sel.Match)

		vals, err := sel.Values(PolicyError)
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 10, 15, 20}, vals)
	})

	t.Run("ambiguous", func(t *testing.T) {
		sel, err := Select(frame, "France")
		require.NoError(t, err)
		assert.Equal(t, Ambiguous, sel.Match)
		assert.Equal(t, 2, sel.Rows.Nrow())

		sum, err := sel.Values(PolicySum)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 5, 7, 11}, sum)

		first, err := sel.Values(PolicyFirst)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 1, 2}, first)

		_, err = sel.Values(PolicyError)
		assert.ErrorIs(t, err, ErrAmbiguousCountry)
	})
}

func TestParsePolicy(t *testing.T) {
	for name, want := range map[string]Policy{"sum": PolicySum, "first": PolicyFirst, "error": PolicyError} {
		got, err := ParsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParsePolicy("average")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
