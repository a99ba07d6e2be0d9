package catalog

import (
	"github.com/meshx-labs/meshx/internal/emphasis"
)

// Domain is one row of the readiness scorecard.
type Domain struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Score      int    `json:"score"`
	Quality    int    `json:"quality"`
	Governance int    `json:"governance"`
	Freshness  int    `json:"freshness"`
	Schema     int    `json:"schema"`
	Products   int    `json:"products"`
	Consumers  int    `json:"consumers"`
}

// Metric is a named sub-score of a domain.
type Metric struct {
	Label string
	Value int
}

// Metrics returns the sub-scores in display order.
func (d Domain) Metrics() []Metric {
	return []Metric{
		{Label: "DQ", Value: d.Quality},
		{Label: "GOV", Value: d.Governance},
		{Label: "FRESH", Value: d.Freshness},
		{Label: "SCHEMA", Value: d.Schema},
	}
}

// Emphasis returns the color class of the domain score.
func (d Domain) Emphasis() emphasis.Emphasis {
	return emphasis.ForScore(d.Score)
}

// Blocker is an issue preventing a domain from being AI ready.
type Blocker struct {
	ID       string `json:"id"`
	DomainID int    `json:"domainId"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Emphasis returns the color class of the blocker severity.
func (b Blocker) Emphasis() emphasis.Emphasis {
	return emphasis.ForSeverity(b.Severity)
}

// Severities.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
)

// Domains returns the scorecard rows.
func Domains() []Domain {
	return []Domain{
		{ID: 1, Name: "SUPPLY CHAIN", Status: "READY", Score: 94, Quality: 98, Governance: 96, Freshness: 91, Schema: 92, Products: 8, Consumers: 23},
		{ID: 2, Name: "FLEET OPERATIONS", Status: "READY", Score: 87, Quality: 91, Governance: 85, Freshness: 88, Schema: 84, Products: 6, Consumers: 15},
		{ID: 3, Name: "CUSTOMER ANALYTICS", Status: "ATTENTION", Score: 68, Quality: 82, Governance: 71, Freshness: 74, Schema: 45, Products: 5, Consumers: 31},
		{ID: 4, Name: "FINANCE & BILLING", Status: "READY", Score: 91, Quality: 95, Governance: 98, Freshness: 82, Schema: 89, Products: 3, Consumers: 8},
		{ID: 5, Name: "PARTNER NETWORK", Status: "ATTENTION", Score: 53, Quality: 61, Governance: 48, Freshness: 67, Schema: 36, Products: 1, Consumers: 4},
		{ID: 6, Name: "HR & WORKFORCE", Status: "BLOCKED", Score: 29, Quality: 44, Governance: 22, Freshness: 31, Schema: 19, Products: 1, Consumers: 2},
	}
}

// Blockers returns the open blockers.
func Blockers() []Blocker {
	return []Blocker{
		{ID: "01", DomainID: 6, Severity: SeverityCritical, Message: "HR & WORKFORCE: PII fields detected without encryption. 12 tables flagged. GDPR non-compliant."},
		{ID: "02", DomainID: 5, Severity: SeverityHigh, Message: "PARTNER NETWORK: Governance policies undefined for 3 of 4 data products. No data owner assigned."},
		{ID: "03", DomainID: 3, Severity: SeverityMedium, Message: "CUSTOMER ANALYTICS: Schema drift detected on customer_events table. 14 downstream consumers affected."},
		{ID: "04", DomainID: 5, Severity: SeverityHigh, Message: "PARTNER NETWORK: Data freshness SLA breach. carrier_metrics last updated 6h ago (SLA: 1h)."},
	}
}

// BlockerByID looks up a blocker by id.
func BlockerByID(id string) (Blocker, bool) {
	for _, b := range Blockers() {
		if b.ID == id {
			return b, true
		}
	}
	return Blocker{}, false
}

// Highlight returns the emphasis of domain id given the hovered blocker.
// Only the blocker's own domain is highlighted.
func Highlight(domainID int, hovered string) (emphasis.Emphasis, bool) {
	b, ok := BlockerByID(hovered)
	if !ok || b.DomainID != domainID {
		return emphasis.Neutral, false
	}
	return b.Emphasis(), true
}
