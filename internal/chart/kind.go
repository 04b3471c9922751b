package chart

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned for a chart-type token that names no chart.
var ErrUnknownKind = errors.New("unknown chart type")

// Kind is one of the three charts drawn for a country.
type Kind int

const (
	Absolute Kind = iota
	Velocity
	Acceleration
)

// Kinds lists every chart in rendering order.
var Kinds = []Kind{Absolute, Velocity, Acceleration}

// Prefix is the short token used in image file names.
func (k Kind) Prefix() string {
	switch k {
	case Absolute:
		return "abs"
	case Velocity:
		return "vel"
	case Acceleration:
		return "acc"
	}
	return fmt.Sprintf("kind%d", int(k))
}

func (k Kind) String() string {
	switch k {
	case Absolute:
		return "absolute"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Title is the default chart heading for country.
func (k Kind) Title(country string) string {
	switch k {
	case Velocity:
		return fmt.Sprintf("New COVID-19 infections per day in %s", country)
	case Acceleration:
		return fmt.Sprintf("Change in daily COVID-19 infections in %s", country)
	}
	return fmt.Sprintf("Total COVID-19 infected in %s", country)
}

// FileName is "<prefix>_<country>.<ext>".
func (k Kind) FileName(country, ext string) string {
	return fmt.Sprintf("%s_%s.%s", k.Prefix(), country, ext)
}

// ParseKinds maps a chart-type token to the charts it selects. The empty
// token and "all" select every chart.
func ParseKinds(token string) ([]Kind, error) {
	switch token {
	case "", "all":
		return Kinds, nil
	case "abs", "absolute":
		return []Kind{Absolute}, nil
	case "vel", "velocity":
		return []Kind{Velocity}, nil
	case "acc", "acceleration":
		return []Kind{Acceleration}, nil
	}
	return nil, fmt.Errorf("%w: %q (want abs, vel, acc or all)", ErrUnknownKind, token)
}
