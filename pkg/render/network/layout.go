package network

import (
	"fmt"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// Layer is one column of the graph.
type Layer struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	Nodes int    `json:"nodes" toml:"nodes" yaml:"nodes"`
	Color string `json:"color" toml:"color" yaml:"color"`
}

// Layout constants.
const (
	Padding     = 60.0
	FooterSpace = 40.0
	LabelOffset = 20.0

	// MinHeight is the canvas height taken by padding and the label footer.
	// Taller canvases leave room for nodes between them.
	MinHeight = 2*Padding + FooterSpace
)

// DefaultColor fills layers that do not name a colour.
const DefaultColor = "#00d4ff"

// DefaultLayers returns the six-layer topology shown when no layers are given.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: "Input", Nodes: 4, Color: "#00d4ff"},
		{Name: "Conv1", Nodes: 8, Color: "#00b8d4"},
		{Name: "Conv2", Nodes: 16, Color: "#7c3aed"},
		{Name: "Features", Nodes: 12, Color: "#a78bfa"},
		{Name: "Concepts", Nodes: 12, Color: "#f59e0b"},
		{Name: "Output", Nodes: 8, Color: "#10b981"},
	}
}

// ValidateLayers checks that there is at least one layer, every layer has a
// node, and colours are well formed.
func ValidateLayers(layers []Layer) error {
	if len(layers) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph needs at least one layer")
	}
	for i, l := range layers {
		if l.Nodes < 1 {
			return errors.New(errors.ErrCodeInvalidInput, "layer %d (%q) needs at least one node, got %d", i, l.Name, l.Nodes)
		}
		if l.Color != "" {
			if err := errors.ValidateColor(l.Color); err != nil {
				return fmt.Errorf("layer %d (%q): %w", i, l.Name, err)
			}
		}
	}
	return nil
}

// ValidateHeight rejects canvases too short to hold the padded node column.
func ValidateHeight(field string, height float64) error {
	if height <= MinHeight {
		return errors.New(errors.ErrCodeInvalidInput, "%s must exceed %g, got %g", field, MinHeight, height)
	}
	return nil
}

// Node is a positioned node.
type Node struct {
	ID    string
	Layer int
	Index int
	X, Y  float64
	Color string
}

// Edge joins a node to a node in the next layer.
type Edge struct {
	From, To int // indices into the node slice
}

// NodeID names node index of layer.
func NodeID(layer, index int) string {
	return fmt.Sprintf("node-%d-%d", layer, index)
}

// ColumnX returns the x position of layer i out of count.
func ColumnX(i, count int, width float64) float64 {
	return width / float64(count+1) * float64(i+1)
}

// NodeY returns the y position of node j in a layer of k nodes. Canvases no
// taller than MinHeight drop the padding and spread nodes over the full height.
func NodeY(j, k int, height float64) float64 {
	available := height - MinHeight
	if available <= 0 {
		return height / float64(k+1) * float64(j+1)
	}
	return Padding + available/float64(k+1)*float64(j+1)
}

// Layout positions every node and lists the edges between adjacent layers.
// Nodes are ordered layer by layer.
func Layout(layers []Layer, width, height float64) ([]Node, []Edge) {
	var nodes []Node
	starts := make([]int, len(layers))
	for i, l := range layers {
		starts[i] = len(nodes)
		x := ColumnX(i, len(layers), width)
		color := l.Color
		if color == "" {
			color = DefaultColor
		}
		for j := range l.Nodes {
			nodes = append(nodes, Node{
				ID:    NodeID(i, j),
				Layer: i,
				Index: j,
				X:     x,
				Y:     NodeY(j, l.Nodes, height),
				Color: color,
			})
		}
	}

	var edges []Edge
	for i := 0; i+1 < len(layers); i++ {
		for s := range layers[i].Nodes {
			for t := range layers[i+1].Nodes {
				edges = append(edges, Edge{From: starts[i] + s, To: starts[i+1] + t})
			}
		}
	}
	return nodes, edges
}

// EdgeCount returns the number of connections between adjacent layers.
func EdgeCount(layers []Layer) int {
	n := 0
	for i := 0; i+1 < len(layers); i++ {
		n += layers[i].Nodes * layers[i+1].Nodes
	}
	return n
}

func labelPoint(i, count int, width, height float64) scene.Point {
	return scene.Point{X: ColumnX(i, count, width), Y: height - LabelOffset}
}
