// Package scene defines the vector scene graph that every lumenviz renderer
// produces.
//
// # Overview
//
// A [Scene] is an ordered list of drawing primitives ([Line], [Circle],
// [Rect], [Path], [Polygon], [Arc], [Text]) plus the gradient definitions and
// attribute animations they reference. Order is paint order: later elements
// are drawn on top.
//
// Scenes are transient. Each render pass allocates a fresh Scene and attaches
// it to its [Container], replacing whatever the previous pass produced; no
// primitive is ever mutated in place once attached.
//
// # Mount Points
//
// A [Document] is the set of named containers a page offers. Renderers are
// constructed against a container id; when the id is absent the renderer is
// inert and draws nothing.
//
//	doc := scene.NewDocument()
//	doc.Add("network-viz", 800, 400)
//	c, ok := doc.Lookup("network-viz")
//
// # Geometry
//
// Angles in [Arc] follow the d3 convention (0 points up, increasing
// clockwise). [Polar] and the radial helpers use standard screen angles
// (0 points right, increasing clockwise because y grows downwards).
package scene
