package pipeline

import (
	"context"
	"errors"

	"github.com/luminexlabs/lumenviz/pkg/render/nodelink"
	"github.com/luminexlabs/lumenviz/pkg/render/sink"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// errSkipFormat marks a format that does not apply to a visualization.
var errSkipFormat = errors.New("skip unsupported format")

// renderFormat exports one scene in one format.
func renderFormat(ctx context.Context, viz, format string, sc *scene.Scene, set *Set, opts *Options, result *Result) ([]byte, error) {
	if !Supports(viz, format) {
		return nil, errSkipFormat
	}
	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc, opts.svgOptions(result.Seed)...)
	case FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(opts.svgOptions(result.Seed)...))
	case FormatJSON:
		return sink.RenderJSON(sc, jsonOptions(viz, set, result)...)
	case FormatDOT:
		return []byte(nodelink.ToDOT(set.Network.Layers(), opts.dotOptions())), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(set.Network.Layers(), opts.dotOptions()))
	}
	return nil, ValidateFormat(format)
}

func jsonOptions(viz string, set *Set, result *Result) []sink.JSONOption {
	opts := []sink.JSONOption{
		sink.WithJSONVizType(viz),
		sink.WithJSONSeed(result.Seed),
		sink.WithJSONIndent(),
	}
	switch viz {
	case VizNetwork:
		opts = append(opts, sink.WithJSONMeta("layers", set.Network.Layers()))
	case VizHeatmap:
		opts = append(opts,
			sink.WithJSONMeta("field", set.Heatmap.Field()),
			sink.WithJSONMeta("summary", set.Heatmap.Field().Summary()))
	case VizRadar:
		opts = append(opts, sink.WithJSONMeta("axes", set.Radar.Data()))
	case VizGauge:
		opts = append(opts, sink.WithJSONMeta("value", set.Gauge.Value()))
	case VizConcepts:
		opts = append(opts, sink.WithJSONMeta("concepts", set.Concepts.Concepts()))
	}
	return opts
}

func (o *Options) dotOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed}
}
