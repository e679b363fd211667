package pipeline

import (
	"context"
	"time"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/graph"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/layout"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/observability"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tracking"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/tree"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout builds the tree from records, positions it with cfg and
// flattens the result. This is the uncached entry point; use
// [Runner.ComputeLayout] to go through the cache.
//
// Records without a root produce an empty layout whose Dropped field lists
// every key. Orphaned records are likewise reported in Dropped.
func GenerateLayout(ctx context.Context, records []tracking.Record, cfg layout.Config) (graph.Layout, error) {
	hooks := observability.Pipeline()

	hooks.OnBuildStart(ctx, len(records))
	start := time.Now()
	root, report, err := tree.Build(records)
	hooks.OnBuildComplete(ctx, report.Nodes, len(report.Dropped), time.Since(start), err)
	if err != nil {
		return graph.Layout{}, err
	}

	hooks.OnLayoutStart(ctx, report.Nodes)
	start = time.Now()
	err = layout.Calculate(root, cfg)
	hooks.OnLayoutComplete(ctx, report.Nodes, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, err
	}

	l := graph.FromTree(root, cfg)
	l.Dropped = report.Dropped
	return l, nil
}
