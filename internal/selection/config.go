package selection

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config carries per-strategy tuning parameters, the resolved column
// mappings the dataset was imported under, and optional region weights.
// The engine never mutates a Config and never retains it across calls.
type Config struct {
	ColumnMappings map[string]string `yaml:"column_mappings" json:"column_mappings,omitempty"`
	Params         Params            `yaml:"params" json:"params"`
	RegionWeights  []RegionWeight    `yaml:"region_weights" json:"region_weights,omitempty"`
}

// Params holds the per-strategy tuning knobs. Each strategy reads only its
// own section; zero-valued sections are replaced by defaults at dispatch.
// A section whose fields are all zero therefore reads as unset: an all-zero
// tuning (e.g. a portfolio with no core and no growth share, i.e. fully
// experimental) cannot be expressed and must leave at least one field
// non-zero instead.
type Params struct {
	Growth      GrowthParams      `yaml:"growth" json:"growth"`
	Portfolio   PortfolioParams   `yaml:"portfolio" json:"portfolio"`
	Demographic DemographicParams `yaml:"demographic" json:"demographic"`
}

// GrowthParams bounds the growth-candidate pool as a percentile slice of the
// ascending performance distribution.
type GrowthParams struct {
	LowerPercentile float64 `yaml:"lower_percentile" json:"lower_percentile"`
	UpperPercentile float64 `yaml:"upper_percentile" json:"upper_percentile"`
}

// PortfolioParams splits the target count across the core and growth tiers.
// The experimental tier absorbs the remainder, including rounding drift.
type PortfolioParams struct {
	CoreShare   float64 `yaml:"core_share" json:"core_share"`
	GrowthShare float64 `yaml:"growth_share" json:"growth_share"`
}

// DemographicParams caps how much of each segment group a single pass may
// take.
type DemographicParams struct {
	GroupQuota float64 `yaml:"group_quota" json:"group_quota"`
}

// RegionWeight over-indexes a region relative to its natural share of the
// dataset. Carried through configuration for planner review; the shipped
// strategies allocate by observed density and performance.
type RegionWeight struct {
	Region string  `yaml:"region" json:"region"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// DefaultConfig returns a Config with the standard tuning: growth pool
// between the 20th and 70th percentiles, 70/20/10 portfolio split, and a 30%
// per-group demographic quota.
func DefaultConfig() Config {
	return Config{
		ColumnMappings: map[string]string{},
		Params: Params{
			Growth:      GrowthParams{LowerPercentile: 0.2, UpperPercentile: 0.7},
			Portfolio:   PortfolioParams{CoreShare: 0.7, GrowthShare: 0.2},
			Demographic: DemographicParams{GroupQuota: 0.3},
		},
	}
}

// normalized fills unset sections of a Config with defaults. A section is
// unset when it is the zero value, which is how a partial strategies.yaml or
// a nil engine argument arrives here.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.ColumnMappings == nil {
		c.ColumnMappings = map[string]string{}
	}
	if c.Params.Growth == (GrowthParams{}) {
		c.Params.Growth = def.Params.Growth
	}
	if c.Params.Portfolio == (PortfolioParams{}) {
		c.Params.Portfolio = def.Params.Portfolio
	}
	if c.Params.Demographic == (DemographicParams{}) {
		c.Params.Demographic = def.Params.Demographic
	}
	return c
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	g := c.Params.Growth
	if g.LowerPercentile < 0 || g.LowerPercentile >= 1 {
		errs = append(errs, "growth.lower_percentile must be in [0, 1)")
	}
	if g.UpperPercentile <= 0 || g.UpperPercentile > 1 {
		errs = append(errs, "growth.upper_percentile must be in (0, 1]")
	}
	if g.LowerPercentile >= g.UpperPercentile {
		errs = append(errs, "growth.lower_percentile must be < growth.upper_percentile")
	}

	p := c.Params.Portfolio
	if p.CoreShare < 0 || p.CoreShare > 1 {
		errs = append(errs, "portfolio.core_share must be in [0, 1]")
	}
	if p.GrowthShare < 0 || p.GrowthShare > 1 {
		errs = append(errs, "portfolio.growth_share must be in [0, 1]")
	}
	if p.CoreShare+p.GrowthShare > 1 {
		errs = append(errs, fmt.Sprintf("portfolio shares must sum to <= 1, got %.2f", p.CoreShare+p.GrowthShare))
	}

	d := c.Params.Demographic
	if d.GroupQuota <= 0 || d.GroupQuota > 1 {
		errs = append(errs, "demographic.group_quota must be in (0, 1]")
	}

	for i, rw := range c.RegionWeights {
		if rw.Region == "" {
			errs = append(errs, fmt.Sprintf("region_weights[%d]: region must not be empty", i))
		}
		if rw.Weight < 0 {
			errs = append(errs, fmt.Sprintf("region_weights[%d]: weight must be >= 0", i))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("selection: invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfig reads strategy configuration from a YAML file and validates it.
// Sections missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "selection: read config %s", path)
	}

	// The YAML has a top-level "selection" key.
	wrapper := struct {
		Selection Config `yaml:"selection"`
	}{Selection: DefaultConfig()}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "selection: parse config")
	}

	cfg := wrapper.Selection.normalized()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
