// Package pkg holds the lumenviz libraries.
//
// # Overview
//
// lumenviz turns small numeric inputs (layer sizes, concept scores, a
// confidence scalar, a randomized attention field) into vector scenes. The
// libraries are layered:
//
//  1. [scene] - drawing primitives, documents and mount points
//  2. [render] - one renderer per visualization, plus sinks that write scenes
//  3. [pipeline] - binds renderers to a document and exports artifacts
//  4. [config] - TOML and YAML configuration
//
// Supporting packages: [colorscale], [random], [animate], [observability],
// [errors] and [buildinfo].
//
// # Data Flow
//
//	config.Config
//	     ↓
//	pipeline.BuildDocument (mount points)
//	     ↓
//	render/{network,heatmap,radar,gauge,flow,concepts} (layout → scene.Scene)
//	     ↓
//	render/sink (SVG, PNG, PDF, JSON) and render/nodelink (DOT, Graphviz)
//
// # Quick Start
//
//	doc := scene.NewDocument()
//	doc.Add("confidence-gauge", 200, 120)
//	g, err := gauge.New(doc, "confidence-gauge", 0.967)
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(g.Render())
//
// [scene]: github.com/luminexlabs/lumenviz/pkg/scene
// [render]: github.com/luminexlabs/lumenviz/pkg/render
// [pipeline]: github.com/luminexlabs/lumenviz/pkg/pipeline
// [config]: github.com/luminexlabs/lumenviz/pkg/config
// [colorscale]: github.com/luminexlabs/lumenviz/pkg/colorscale
// [random]: github.com/luminexlabs/lumenviz/pkg/random
// [animate]: github.com/luminexlabs/lumenviz/pkg/animate
// [observability]: github.com/luminexlabs/lumenviz/pkg/observability
// [errors]: github.com/luminexlabs/lumenviz/pkg/errors
// [buildinfo]: github.com/luminexlabs/lumenviz/pkg/buildinfo
package pkg
