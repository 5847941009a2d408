package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/luminexlabs/lumenviz/pkg/observability"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// Runner executes pipeline runs. It holds no per-run state, so one Runner
// may serve concurrent runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute lays out every requested visualization concurrently and exports
// each scene in the requested formats. Inert renderers and formats that do
// not apply to a visualization are recorded in Result.Skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Effective()

	doc := BuildDocument(cfg)
	set, err := NewSet(doc, cfg, opts.VizTypes)
	if err != nil {
		return nil, fmt.Errorf("bind renderers: %w", err)
	}
	defer set.Close()

	result := &Result{
		Seed:      cfg.Seed,
		VizTypes:  slices.Clone(opts.VizTypes),
		Artifacts: make(map[string]map[string][]byte),
		Stats:     Stats{Elements: make(map[string]int)},
	}

	// Layout
	layoutStart := time.Now()
	scenes, err := r.layout(ctx, set, opts.VizTypes, result)
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	if set.Heatmap != nil && scenes[VizHeatmap] != nil {
		s := set.Heatmap.Field().Summary()
		result.Summary = &s
	}
	r.Logger.Info("laid out visualizations",
		"count", len(scenes),
		"seed", cfg.Seed,
		"duration", result.Stats.LayoutTime)

	// Render
	renderStart := time.Now()
	if err := r.export(ctx, scenes, set, opts, result); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	slices.SortFunc(result.Skipped, func(a, b Skip) int {
		return cmp.Or(cmp.Compare(a.VizType, b.VizType), cmp.Compare(a.Format, b.Format))
	})
	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layout renders one scene per visualization.
func (r *Runner) layout(ctx context.Context, set *Set, types []string, result *Result) (map[string]*scene.Scene, error) {
	hooks := observability.Pipeline()
	scenes := make(map[string]*scene.Scene, len(types))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, viz := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rd := set.Get(viz)
			if rd == nil {
				return ValidateVizType(viz)
			}
			hooks.OnSceneStart(ctx, viz)
			start := time.Now()
			sc := rd.Render()
			n := 0
			if sc != nil {
				n = sc.Len()
			}
			hooks.OnSceneComplete(ctx, viz, n, time.Since(start), nil)

			mu.Lock()
			defer mu.Unlock()
			if sc == nil {
				r.Logger.Warn("mount point not found, skipping", "viz", viz)
				result.Skipped = append(result.Skipped, Skip{VizType: viz, Reason: "mount point not found"})
				return nil
			}
			scenes[viz] = sc
			result.Stats.Elements[viz] = n
			r.Logger.Debug("scene ready", "viz", viz, "elements", n, "duration", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return scenes, nil
}

// export writes every scene in every format.
func (r *Runner) export(ctx context.Context, scenes map[string]*scene.Scene, set *Set, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for viz, sc := range scenes {
		for _, format := range opts.Formats {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				hooks.OnExportStart(ctx, viz, format)
				start := time.Now()
				data, err := renderFormat(ctx, viz, format, sc, set, &opts, result)
				hooks.OnExportComplete(ctx, viz, format, len(data), time.Since(start), err)

				mu.Lock()
				defer mu.Unlock()
				if errors.Is(err, errSkipFormat) {
					r.Logger.Debug("format does not apply, skipping", "viz", viz, "format", format)
					result.Skipped = append(result.Skipped, Skip{VizType: viz, Format: format, Reason: "format does not apply"})
					return nil
				}
				if err != nil {
					return fmt.Errorf("render %s %s: %w", viz, format, err)
				}
				if result.Artifacts[viz] == nil {
					result.Artifacts[viz] = make(map[string][]byte)
				}
				result.Artifacts[viz][format] = data
				return nil
			})
		}
	}
	return g.Wait()
}

// applyLogger sets the logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
