package selection

import "strings"

// StrategyID identifies one of the selection strategies.
type StrategyID string

const (
	StrategyRevenueFocus         StrategyID = "revenue_focus"
	StrategyGeographicCoverage   StrategyID = "geographic_coverage"
	StrategyGrowthOpportunities  StrategyID = "growth_opportunities"
	StrategyPortfolioBalance     StrategyID = "portfolio_balance"
	StrategyMarketPenetration    StrategyID = "market_penetration"
	StrategyDemographicTargeting StrategyID = "demographic_targeting"
)

// StrategyInfo describes a strategy for help output and validation.
type StrategyInfo struct {
	ID          StrategyID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	// Requirements lists the requirement keys the strategy reads from each
	// record, matching the keys used by column mapping at import time.
	Requirements []string `json:"requirements"`
}

// strategyCatalog is ordered; Strategies and help output preserve this order.
var strategyCatalog = []StrategyInfo{
	{
		ID:           StrategyRevenueFocus,
		Name:         "Revenue Focus",
		Description:  "Top performers by revenue, highest first.",
		Requirements: []string{"performance"},
	},
	{
		ID:           StrategyGeographicCoverage,
		Name:         "Geographic Coverage",
		Description:  "Every region represented first, remaining slots filled round-robin by performance.",
		Requirements: []string{"performance", "region"},
	},
	{
		ID:           StrategyGrowthOpportunities,
		Name:         "Growth Opportunities",
		Description:  "Mid-range performers with headroom, spread across regions.",
		Requirements: []string{"performance", "region"},
	},
	{
		ID:           StrategyPortfolioBalance,
		Name:         "Portfolio Balance (70/20/10)",
		Description:  "Core coverage picks plus growth picks plus an experimental remainder.",
		Requirements: []string{"performance", "region"},
	},
	{
		ID:           StrategyMarketPenetration,
		Name:         "Market Penetration",
		Description:  "Allocation weighted toward regions with the most stores.",
		Requirements: []string{"performance", "region"},
	},
	{
		ID:           StrategyDemographicTargeting,
		Name:         "Demographic Targeting",
		Description:  "Customer-group and channel segments ranked by average performance.",
		Requirements: []string{"performance", "customer_group", "channel"},
	},
}

// Strategies returns the catalog of available strategies in display order.
func Strategies() []StrategyInfo {
	out := make([]StrategyInfo, len(strategyCatalog))
	copy(out, strategyCatalog)
	return out
}

// KnownStrategy reports whether id names a shipped strategy.
func KnownStrategy(id StrategyID) bool {
	for _, s := range strategyCatalog {
		if s.ID == id {
			return true
		}
	}
	return false
}

// ParseStrategyID resolves user input to a StrategyID. It accepts the
// canonical snake_case id as well as dash-separated spellings. The second
// return is false when the input names no shipped strategy.
func ParseStrategyID(s string) (StrategyID, bool) {
	id := StrategyID(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	return id, KnownStrategy(id)
}
