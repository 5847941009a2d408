package sink

import (
	"context"

	"github.com/luminexlabs/lumenviz/pkg/render"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders sc as PDF via SVG conversion. Animations are dropped.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, sc *scene.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg, err := RenderSVG(sc, append(r.svgOpts, WithoutAnimations())...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
