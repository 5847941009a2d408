// Package nodelink renders a layer topology as a traditional node-link
// diagram with Graphviz.
//
// Every layer becomes a rank, nodes are filled with their layer colour, and
// adjacent layers are fully connected, mirroring the network renderer:
//
//	dot := nodelink.ToDOT(layers, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output is plain DOT source and can be fed to any Graphviz tool.
// [RenderSVG] lays it out in-process with go-graphviz (no graphviz install
// needed).
package nodelink
