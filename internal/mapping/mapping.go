// Package mapping binds the selection engine's requirement keys to dataset
// columns. A Registry describes what the engine needs ("performance",
// "region", ...); a ColumnMap is the resolved binding for one concrete
// dataset, produced once at import time and read-only afterwards.
package mapping

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Requirement describes one data need of the selection engine.
type Requirement struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Synonyms []string `json:"synonyms,omitempty"` // header spellings seen in retail exports
}

// Registry is an indexed collection of requirements.
type Registry struct {
	Requirements []Requirement
	byKey        map[string]*Requirement
	required     []*Requirement
}

// NewRegistry creates a Registry with indexed lookups.
func NewRegistry(reqs []Requirement) *Registry {
	r := &Registry{
		Requirements: reqs,
		byKey:        make(map[string]*Requirement, len(reqs)),
	}
	for i := range r.Requirements {
		req := &r.Requirements[i]
		r.byKey[req.Key] = req
		if req.Required {
			r.required = append(r.required, req)
		}
	}
	return r
}

// ByKey returns the requirement for the given key, or nil if not found.
func (r *Registry) ByKey(key string) *Requirement {
	return r.byKey[key]
}

// Required returns all required requirements in registry order.
func (r *Registry) Required() []*Requirement {
	return r.required
}

// DefaultRegistry returns the standard store-dataset requirements. Name,
// region, and performance are required because the engine's record invariant
// depends on them; everything else enriches filtering and reporting when
// present.
func DefaultRegistry() *Registry {
	return NewRegistry([]Requirement{
		{Key: "store_id", Label: "Store number", Synonyms: []string{
			"filialnummer", "filialnr", "storenumber", "storeid", "nummer", "id",
		}},
		{Key: "crm_id", Label: "CRM id", Synonyms: []string{
			"crmid", "sfid", "accountid", "kundennummer",
		}},
		{Key: "name", Label: "Store name", Required: true, Synonyms: []string{
			"filialname", "storename", "bezeichnung", "markt",
		}},
		{Key: "street", Label: "Street", Synonyms: []string{
			"strasse", "street",
		}},
		{Key: "street_number", Label: "Street number", Synonyms: []string{
			"hausnummer", "streetnumber", "hausnr",
		}},
		{Key: "postal_code", Label: "Postal code", Synonyms: []string{
			"plz", "postleitzahl", "zip", "zipcode", "postalcode",
		}},
		{Key: "city", Label: "City", Synonyms: []string{
			"stadt", "ort", "city",
		}},
		{Key: "region", Label: "Region", Required: true, Synonyms: []string{
			"bundesland", "province", "state", "land", "gebiet", "regionname",
		}},
		{Key: "channel", Label: "Channel", Synonyms: []string{
			"kanal", "vertriebskanal", "vertriebsweg",
		}},
		{Key: "store_type", Label: "Store type", Synonyms: []string{
			"filialtyp", "storetype", "typ", "format",
		}},
		{Key: "customer_group", Label: "Customer group", Synonyms: []string{
			"kundengruppe", "customergroup", "zielgruppe", "segment",
		}},
		{Key: "strategy_tag", Label: "Strategy tag", Synonyms: []string{
			"strategie", "strategytag", "cluster", "tag",
		}},
		{Key: "performance", Label: "Performance value", Required: true, Synonyms: []string{
			"umsatz", "jahresumsatz", "monatsumsatz", "revenue", "sales",
			"turnover", "prodselect",
		}},
		{Key: "store_size", Label: "Store size", Synonyms: []string{
			"flaeche", "verkaufsflaeche", "quadratmeter", "sqm", "size", "storesize",
		}},
	})
}

// Column is one resolved requirement-to-column binding.
type Column struct {
	Requirement string `json:"requirement"`
	Header      string `json:"header"`
	Index       int    `json:"index"`
}

// ColumnMap is the resolved binding between requirement keys and the columns
// of one dataset header. It is built once per import and never re-resolved
// downstream.
type ColumnMap struct {
	columns map[string]Column
}

// ResolveColumns binds requirement keys to header positions. mappings gives
// the chosen header name per requirement key (from configuration or a
// confirmed suggestion); requirement keys missing from mappings resolve by
// exact header match on the key itself. An error is returned when a required
// requirement stays unbound or a mapped header does not exist.
func ResolveColumns(header []string, mappings map[string]string, reg *Registry) (*ColumnMap, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	cm := &ColumnMap{columns: make(map[string]Column)}
	var missing []string

	for _, req := range reg.Requirements {
		headerName, mapped := mappings[req.Key]
		if !mapped {
			headerName = req.Key
		}
		idx, ok := index[headerName]
		if !ok && !mapped {
			// No explicit mapping and no column literally named after the
			// key: try the normalized synonym match before giving up.
			idx, ok = matchSynonym(header, req)
		}
		if !ok {
			if mapped {
				return nil, eris.Errorf("mapping: column %q for %q not found in header", headerName, req.Key)
			}
			if req.Required {
				missing = append(missing, req.Key)
			}
			continue
		}
		cm.columns[req.Key] = Column{
			Requirement: req.Key,
			Header:      strings.TrimSpace(header[idx]),
			Index:       idx,
		}
	}

	if len(missing) > 0 {
		return nil, eris.Errorf("mapping: required columns unmapped: %s", strings.Join(missing, ", "))
	}
	return cm, nil
}

// matchSynonym finds the first header whose normalized form equals the
// requirement key or one of its synonyms.
func matchSynonym(header []string, req Requirement) (int, bool) {
	for i, col := range header {
		n := normalizeHeader(col)
		if n == normalizeHeader(req.Key) {
			return i, true
		}
		for _, syn := range req.Synonyms {
			if n == syn {
				return i, true
			}
		}
	}
	return 0, false
}

// Lookup returns the resolved column for a requirement key.
func (m *ColumnMap) Lookup(key string) (Column, bool) {
	col, ok := m.columns[key]
	return col, ok
}

// Value safely retrieves the cell for a requirement key from a row. Unbound
// keys and short rows yield the empty string.
func (m *ColumnMap) Value(row []string, key string) string {
	col, ok := m.columns[key]
	if !ok || col.Index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col.Index])
}

// Bound returns the resolved bindings in registry-independent deterministic
// order (by column index).
func (m *ColumnMap) Bound() []Column {
	out := make([]Column, 0, len(m.columns))
	for _, col := range m.columns {
		out = append(out, col)
	}
	// Insertion sort is fine for a dozen bindings.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Index < out[j-1].Index; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
