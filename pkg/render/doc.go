// Package render holds the visualization renderers and shared format
// conversion.
//
// # Renderers
//
// Each subpackage binds to a named container of a [scene.Document] and
// produces a fresh [scene.Scene] per render pass:
//
//   - [network]: layered graph with pulsing nodes
//   - [heatmap]: scalar field drawn as a cell grid
//   - [radar]: radial chart over named axes
//   - [gauge]: half-circle confidence gauge
//   - [flow]: data-flow connectors between columns
//   - [concepts]: drifting concept score bars
//
// Scenes are written out by [sink]; [nodelink] exports a layer topology as
// a Graphviz diagram.
//
// # Format Conversion
//
// [ToPDF] converts any SVG with the external rsvg-convert tool (from
// librsvg):
//
//	svg, _ := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [scene.Document]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/scene#Document
// [scene.Scene]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/scene#Scene
// [network]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/network
// [heatmap]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/heatmap
// [radar]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/radar
// [gauge]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/gauge
// [flow]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/flow
// [concepts]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/concepts
// [sink]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/sink
// [nodelink]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/render/nodelink
package render
