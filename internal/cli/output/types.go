package output

// GraphOutput is the JSON shape of the graph command.
type GraphOutput struct {
	NodeSize Size         `json:"node_size"`
	Nodes    []NodeOutput `json:"nodes"`
	Edges    []EdgeOutput `json:"edges"`
	Levels   [][]string   `json:"levels"`
	Roots    []string     `json:"roots"`
	Leaves   []string     `json:"leaves"`
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointOutput is a canvas coordinate.
type PointOutput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeOutput describes one graph node.
type NodeOutput struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Badge    string   `json:"badge,omitempty"`
	Category string   `json:"category"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Parents    []string `json:"parents,omitempty"`
	Children   []string `json:"children,omitempty"`
	Upstream   []string `json:"upstream,omitempty"`
	Downstream []string `json:"downstream,omitempty"`
}

// EdgeOutput describes one edge with its computed geometry.
type EdgeOutput struct {
	ID       string      `json:"id"`
	From     string      `json:"from"`
	To       string      `json:"to"`
	Label    string      `json:"label,omitempty"`
	Start    PointOutput `json:"start"`
	End      PointOutput `json:"end"`
	Midpoint PointOutput `json:"midpoint"`
	Path     string      `json:"path"`
}

// SparklineOutput is the JSON shape of the sparkline command.
type SparklineOutput struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Points   []PointOutput `json:"points"`
	Polyline string        `json:"polyline,omitempty"`
}
