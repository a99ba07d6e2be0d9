package lineage

import (
	"math"
	"strconv"
	"strings"
)

// Category classifies a node by its role in the flow.
type Category string

// Node categories.
const (
	CategorySource    Category = "source"
	CategoryTransform Category = "transform"
	CategoryOutput    Category = "output"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySource, CategoryTransform, CategoryOutput:
		return true
	}
	return false
}

// Node is a labeled rectangle on the lineage canvas. X and Y are the
// top-left corner; the size is shared by every node of a Graph.
type Node struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Label    string   `json:"label" yaml:"label"`
	Badge    string   `json:"badge,omitempty" yaml:"badge"`
	Category Category `json:"category" yaml:"category" validate:"required,oneof=source transform output"`
	X        float64  `json:"x" yaml:"x" validate:"gte=0"`
	Y        float64  `json:"y" yaml:"y" validate:"gte=0"`
}

// Edge is a directed data flow between two nodes.
type Edge struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	From  string `json:"from" yaml:"from" validate:"required"`
	To    string `json:"to" yaml:"to" validate:"required"`
	Label string `json:"label" yaml:"label"`
}

// Touches reports whether nodeID is either endpoint of e.
func (e Edge) Touches(nodeID string) bool {
	return nodeID != "" && (e.From == nodeID || e.To == nodeID)
}

// Point is a coordinate on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) String() string {
	return formatNum(p.X) + " " + formatNum(p.Y)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Path is a cubic Bezier between two anchors.
type Path struct {
	Start Point `json:"start"`
	C1    Point `json:"c1"`
	C2    Point `json:"c2"`
	End   Point `json:"end"`
}

// String renders the path as SVG path data.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(p.Start.String())
	b.WriteString(" C ")
	b.WriteString(p.C1.String())
	b.WriteString(", ")
	b.WriteString(p.C2.String())
	b.WriteString(", ")
	b.WriteString(p.End.String())
	return b.String()
}

// At evaluates the curve at t in [0, 1].
func (p Path) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p.Start.X + b*p.C1.X + c*p.C2.X + d*p.End.X,
		Y: a*p.Start.Y + b*p.C1.Y + c*p.C2.Y + d*p.End.Y,
	}
}

// formatNum prints the shortest representation, e.g. 75 rather than 75.000000.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
