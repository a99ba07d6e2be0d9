// Package sparkline projects a numeric series onto a small plot area.
package sparkline

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("sparkline: empty series")

// ErrNonFiniteSample is returned for NaN or infinite samples.
var ErrNonFiniteSample = errors.New("sparkline: non-finite sample")

// Point is a projected sample in plot coordinates. Y grows downwards, so
// larger samples have smaller Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project maps series onto a width x height plot. The minimum sample lands
// on the bottom edge and the maximum on the top edge. A flat series uses a
// unit range, which places every point on the bottom edge.
func Project(series []float64, width, height float64) ([]Point, error) {
	n := len(series)
	if n == 0 {
		return nil, ErrEmptySeries
	}
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w at index %d: %v", ErrNonFiniteSample, i, v)
		}
	}

	lo, hi := slices.Min(series), slices.Max(series)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := 0.0
	if n > 1 {
		step = width / float64(n-1)
	}

	points := make([]Point, n)
	for i, v := range series {
		points[i] = Point{
			X: float64(i) * step,
			Y: height - ((v-lo)/span)*height,
		}
	}
	return points, nil
}

// CanDrawLine reports whether points can form a connected polyline.
// A single sample is drawn as a lone marker.
func CanDrawLine(points []Point) bool {
	return len(points) >= 2
}

// Last returns the final point, used for the trailing marker.
func Last(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	return points[len(points)-1], true
}

// Polyline formats points for the SVG polyline "points" attribute.
func Polyline(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNum(p.X))
		b.WriteByte(',')
		b.WriteString(formatNum(p.Y))
	}
	return b.String()
}

// formatNum rounds to two decimals and drops trailing zeros.
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
