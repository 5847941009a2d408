// Package sink writes a [scene.Scene] out in a concrete file format.
//
// # Formats
//
//   - SVG: [RenderSVG], with gradients, blur filters and SMIL animations
//   - PNG: [RenderPNG], rasterised in-process (no animations, no blur)
//   - PDF: [RenderPDF], SVG converted with rsvg-convert
//   - JSON: [RenderJSON], the scene's primitives for external tools
//
// Gradient and filter ids are namespaced per scene so several outputs can be
// inlined into one HTML page without their definitions colliding. Element
// ids (for example network node ids) are written unchanged.
//
//	svg, err := sink.RenderSVG(sc)
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// [scene.Scene]: https://pkg.go.dev/github.com/luminexlabs/lumenviz/pkg/scene#Scene
package sink
