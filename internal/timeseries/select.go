package timeseries

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Match classifies how many rows a country name selected.
type Match int

const (
	NotFound Match = iota
	Unique
	Ambiguous
)

func (m Match) String() string {
	switch m {
	case NotFound:
		return "not found"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	}
	return fmt.Sprintf("Match(%d)", int(m))
}

// Policy decides how an ambiguous selection becomes a single series.
type Policy int

const (
	// PolicySum adds the matching rows day by day.
	PolicySum Policy = iota
	// PolicyFirst keeps the first matching row.
	PolicyFirst
	// PolicyError refuses ambiguous selections.
	PolicyError
)

var policyNames = map[string]Policy{
	"sum":   PolicySum,
	"first": PolicyFirst,
	"error": PolicyError,
}

// ParsePolicy maps "sum", "first" or "error" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	p, ok := policyNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
	return p, nil
}

func (p Policy) String() string {
	for name, v := range policyNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Selection holds the rows whose region name equals Country exactly.
type Selection struct {
	Country string
	Match   Match
	Rows    dataframe.DataFrame
}

// Select filters df on RegionColumn. No match is not an error; it yields a
// NotFound selection with zero rows.
func Select(df dataframe.DataFrame, country string) (Selection, error) {
	rows := df.Filter(dataframe.F{
		Colname:    RegionColumn,
		Comparator: series.Eq,
		Comparando: country,
	})
	if rows.Err != nil {
		return Selection{}, fmt.Errorf("failed to select %q: %w", country, rows.Err)
	}

	sel := Selection{Country: country, Rows: rows}
	switch n := rows.Nrow(); {
	case n == 0:
		sel.Match = NotFound
	case n == 1:
		sel.Match = Unique
	default:
		sel.Match = Ambiguous
	}
	return sel, nil
}

// Values returns the selected series block as one row of values.
func (s Selection) Values(policy Policy) ([]float64, error) {
	if s.Match == NotFound {
		return nil, fmt.Errorf("%w: %q", ErrCountryNotFound, s.Country)
	}
	block := Series(s.Rows)
	if block.Err != nil {
		return nil, fmt.Errorf("failed to read series of %q: %w", s.Country, block.Err)
	}
	m := mat.DenseCopyOf(matrix{block})

	if s.Match == Unique || policy == PolicyFirst {
		return mat.Row(nil, 0, m), nil
	}
	if policy != PolicySum {
		return nil, fmt.Errorf("%w: %q has %d rows", ErrAmbiguousCountry, s.Country, s.Rows.Nrow())
	}
	_, cols := m.Dims()
	sums := make([]float64, cols)
	for j := range sums {
		sums[j] = floats.Sum(mat.Col(nil, j, m))
	}
	return sums, nil
}
