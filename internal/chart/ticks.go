package chart

import (
	"math"
	"time"

	"gonum.org/v1/plot"
)

// DateTickLayout is the abbreviated month/day tick label.
const DateTickLayout = "Jan 2"

// DateTicks places a labelled tick under every Every-th bar, starting from
// the first. Bar i sits at x = i.
type DateTicks struct {
	Dates []time.Time
	Every int
}

var _ plot.Ticker = DateTicks{}

func (d DateTicks) Ticks(min, max float64) []plot.Tick {
	every := d.Every
	if every <= 0 {
		every = 7
	}
	var ticks []plot.Tick
	for i := 0; i < len(d.Dates); i += every {
		x := float64(i)
		if x < math.Floor(min) || x > math.Ceil(max) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: d.Dates[i].Format(DateTickLayout)})
	}
	return ticks
}
