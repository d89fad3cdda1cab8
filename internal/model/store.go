// Package model defines the canonical store record shared by ingestion,
// selection, and reporting.
package model

// StoreRecord represents one retail location after import-time normalization.
// Records are created once by the ingestion layer and treated as read-only
// everywhere downstream.
type StoreRecord struct {
	// Identity.
	StoreID string `json:"store_id"`
	CRMID   string `json:"crm_id,omitempty"`
	Name    string `json:"name"`

	// Location.
	Street       string `json:"street,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region"`

	// Classification. Free-form categorical strings, e.g. channel "mall",
	// customer group "premium".
	Channel       string `json:"channel,omitempty"`
	StoreType     string `json:"store_type,omitempty"`
	CustomerGroup string `json:"customer_group,omitempty"`
	StrategyTag   string `json:"strategy_tag,omitempty"`

	// Metrics.
	PerformanceValue float64 `json:"performance_value"`
	StoreSize        float64 `json:"store_size,omitempty"`
}

// Valid reports whether the record satisfies the minimum contract required
// by the selection engine: a non-empty region and a non-negative performance
// value. Ingestion rejects anything that fails this before the engine ever
// sees it.
func (r StoreRecord) Valid() bool {
	return r.Region != "" && r.PerformanceValue >= 0
}
