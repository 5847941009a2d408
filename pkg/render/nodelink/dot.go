package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/luminexlabs/lumenviz/pkg/render/network"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels every node with its layer name and index.
	// When false nodes are drawn as unlabelled dots.
	Detailed bool
	// TopDown ranks layers top to bottom instead of left to right.
	TopDown bool
}

// ToDOT converts a layer topology to Graphviz DOT format.
func ToDOT(layers []network.Layer, opts Options) string {
	rankdir := "LR"
	if opts.TopDown {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Detailed {
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=10, fontcolor=white, color=\"#333333\"];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, label=\"\", width=0.2, fixedsize=true, color=\"#333333\"];\n")
	}
	buf.WriteString("  edge [color=\"#33333366\", arrowsize=0.4];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.15;\n")

	for i, l := range layers {
		color := l.Color
		if color == "" {
			color = network.DefaultColor
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph layer_%d {\n", i)
		buf.WriteString("    rank=same;\n")
		for j := range l.Nodes {
			attrs := fmt.Sprintf("fillcolor=%q", color)
			label := ""
			if opts.Detailed {
				label = fmtLabel(l, j)
			}
			attrs += fmt.Sprintf(", label=%q", label)
			fmt.Fprintf(&buf, "    %q [%s];\n", network.NodeID(i, j), attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for i := 0; i+1 < len(layers); i++ {
		for s := range layers[i].Nodes {
			for t := range layers[i+1].Nodes {
				fmt.Fprintf(&buf, "  %q -> %q;\n", network.NodeID(i, s), network.NodeID(i+1, t))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l network.Layer, index int) string {
	if l.Name == "" {
		return strconv.Itoa(index)
	}
	return l.Name + " " + strconv.Itoa(index)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one sized
// in pixels so the diagram scales like the other outputs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
