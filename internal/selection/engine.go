// Package selection implements the store selection engine: six deterministic
// strategies that choose a target number of stores from an in-memory dataset,
// plus the grouping and analytics primitives they share. Every operation is a
// pure function of its inputs; the engine holds no mutable state, so
// concurrent calls with independent inputs are safe.
package selection

import (
	"go.uber.org/zap"

	"github.com/sells-group/storeplan/internal/model"
)

// BrandFunc maps a store display name to its retailer brand. It feeds the
// unique-retailer statistic only; a nil BrandFunc falls back to the raw name.
type BrandFunc func(name string) string

// TargetConfig sets how many stores to select. Callers are expected to clamp
// Total to the candidate pool size; the engine tolerates overshoot by
// returning at most the whole pool.
type TargetConfig struct {
	Total int `json:"total" yaml:"total"`
}

// Engine dispatches selection requests to strategy implementations and
// derives analytics from their output.
type Engine struct {
	brandFn BrandFunc
}

// NewEngine creates an Engine using brandFn for the unique-retailer
// statistic.
func NewEngine(brandFn BrandFunc) *Engine {
	if brandFn == nil {
		brandFn = func(name string) string { return name }
	}
	return &Engine{brandFn: brandFn}
}

// Select runs the strategy named by strategyID over the working set and
// returns the selection with its analytics. The working set is filtered when
// that is non-empty, otherwise all. Unknown strategy ids fall back to
// revenue focus; an empty working set returns a zeroed Result. Select never
// fails: degenerate input produces a well-formed empty result.
func (e *Engine) Select(all []model.StoreRecord, strategyID StrategyID, target TargetConfig, filtered []model.StoreRecord, cfg *Config) Result {
	working := all
	if len(filtered) > 0 {
		working = filtered
	}
	if len(working) == 0 {
		return buildResult(nil, nil, e.brandFn)
	}

	conf := DefaultConfig()
	if cfg != nil {
		conf = cfg.normalized()
	}

	fn := strategyImpl(strategyID)
	if fn == nil {
		zap.L().Warn("selection: unknown strategy, using revenue focus",
			zap.String("strategy", string(strategyID)),
		)
		fn = revenueFocus
	}

	selected := fn(working, target.Total, conf)
	return buildResult(selected, working, e.brandFn)
}

// strategyImpl returns the implementation for id, or nil when id is unknown.
func strategyImpl(id StrategyID) strategyFunc {
	switch id {
	case StrategyRevenueFocus:
		return revenueFocus
	case StrategyGeographicCoverage:
		return geographicCoverage
	case StrategyGrowthOpportunities:
		return growthOpportunities
	case StrategyPortfolioBalance:
		return portfolioBalance
	case StrategyMarketPenetration:
		return marketPenetration
	case StrategyDemographicTargeting:
		return demographicTargeting
	default:
		return nil
	}
}
