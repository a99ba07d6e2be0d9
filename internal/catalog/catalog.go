// Package catalog holds the fixed MeshX Foundation dataset: the
// supply-chain lineage graph, source detail records, the feature list,
// header stats and the readiness scorecard.
package catalog

import (
	"github.com/meshx-labs/meshx/internal/emphasis"
	"github.com/meshx-labs/meshx/internal/lineage"
)

// Node ids of the default graph.
const (
	NodeSAP       = "sap-erp"
	NodeKafka     = "kafka-stream"
	NodeREST      = "rest-api"
	NodeEngine    = "foundation-engine"
	NodeProduct   = "supply-chain-dp"
	CanvasWidth   = 620
	CanvasHeight  = 370
	OverallScore  = 71
	SeriesSamples = 7
)

// Nodes returns the nodes of the default graph.
func Nodes() []lineage.Node {
	return []lineage.Node{
		{ID: NodeSAP, Name: "SAP_ERP", Label: "WAREHOUSE DATA", Badge: "DOMAIN: LOGISTICS", Category: lineage.CategorySource, X: 30, Y: 40},
		{ID: NodeKafka, Name: "KAFKA_STREAM", Label: "SHIPMENT EVENTS", Badge: "DOMAIN: TRANSPORT", Category: lineage.CategorySource, X: 30, Y: 150},
		{ID: NodeREST, Name: "REST_API", Label: "CARRIER METRICS", Badge: "DOMAIN: PARTNERS", Category: lineage.CategorySource, X: 30, Y: 260},
		{ID: NodeEngine, Name: "FOUNDATION ENGINE", Label: "MERGE + VALIDATE + ENRICH", Category: lineage.CategoryTransform, X: 230, Y: 135},
		{ID: NodeProduct, Name: "SUPPLY CHAIN DP", Label: "DATA PRODUCT", Badge: "STATUS: LIVE", Category: lineage.CategoryOutput, X: 420, Y: 135},
	}
}

// Edges returns the edges of the default graph.
func Edges() []lineage.Edge {
	return []lineage.Edge{
		{ID: "e1", From: NodeSAP, To: NodeEngine, Label: "~2.1k events/sec"},
		{ID: "e2", From: NodeKafka, To: NodeEngine, Label: "~3.8k events/sec"},
		{ID: "e3", From: NodeREST, To: NodeEngine, Label: "~1.4k events/sec"},
		{ID: "e4", From: NodeEngine, To: NodeProduct, Label: "~7.3k events/sec"},
	}
}

// Graph builds the default lineage graph.
func Graph() *lineage.Graph {
	return lineage.MustNew(Nodes(), Edges())
}

// SourceDetail is the record shown when a source node is selected.
type SourceDetail struct {
	NodeID   string    `json:"nodeId"`
	System   string    `json:"system"`
	Owner    string    `json:"owner"`
	Team     string    `json:"team"`
	LastSync string    `json:"lastSync"`
	Records  string    `json:"records"`
	SLA      string    `json:"sla"`
	Uptime   float64   `json:"uptime"`
	Volume   []float64 `json:"volume"`
}

// SLA states.
const (
	SLAOnTime   = "ON-TIME"
	SLABreached = "BREACHED"
)

var details = map[string]SourceDetail{
	NodeSAP: {
		NodeID: NodeSAP, System: "SAP_ERP", Owner: "Maria Chen", Team: "Logistics EU",
		LastSync: "2 min ago", Records: "4.2M", SLA: SLAOnTime, Uptime: 99.7,
		Volume: []float64{3.6, 3.8, 4.0, 3.7, 4.3, 4.1, 4.2},
	},
	NodeKafka: {
		NodeID: NodeKafka, System: "KAFKA_STREAM", Owner: "Jonas Weber", Team: "Transport Platform",
		LastSync: "real-time", Records: "6.8M", SLA: SLAOnTime, Uptime: 99.9,
		Volume: []float64{6.1, 6.4, 6.2, 6.9, 6.6, 7.0, 6.8},
	},
	NodeREST: {
		NodeID: NodeREST, System: "REST_API", Owner: "Priya Nair", Team: "Partner Integrations",
		LastSync: "6h ago", Records: "1.4M", SLA: SLABreached, Uptime: 97.2,
		Volume: []float64{1.6, 1.5, 1.5, 1.3, 1.4, 1.1, 1.0},
	},
}

// Detail returns the detail record of a source node.
func Detail(nodeID string) (SourceDetail, bool) {
	d, ok := details[nodeID]
	if !ok {
		return SourceDetail{}, false
	}
	d.Volume = append([]float64(nil), d.Volume...)
	return d, true
}

// HasDetail reports whether n carries a detail record. It is used as the
// resolver's selectable predicate.
func HasDetail(n lineage.Node) bool {
	_, ok := details[n.ID]
	return ok
}

// Feature is one entry of the dashboard feature list. Hovering it hovers
// the linked node.
type Feature struct {
	Number        string            `json:"number"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	NodeID        string            `json:"nodeId"`
	Progress      float64           `json:"progress,omitempty"`
	Badge         string            `json:"badge,omitempty"`
	BadgeEmphasis emphasis.Emphasis `json:"-"`
}

// HasProgress reports whether the feature shows a progress bar.
func (f Feature) HasProgress() bool { return f.Progress > 0 }

// Features returns the feature list.
func Features() []Feature {
	return []Feature{
		{
			Number: "01", Title: "Data Quality Score",
			Description: "Automated validation passes 847 of 851 checks. 4 warnings on carrier_id schema drift.",
			NodeID:      NodeSAP, Progress: 99.5,
		},
		{
			Number: "02", Title: "Access & Governance",
			Description: "Role-based access active. 14 consumers authorized. PII fields encrypted. GDPR compliant.",
			NodeID:      NodeKafka, Badge: "GOVERNANCE: ACTIVE", BadgeEmphasis: emphasis.Neutral,
		},
		{
			Number: "03", Title: "AI Readiness",
			Description: "Pre-processed for model training. Feature store compatible. Last model training: 2h ago.",
			NodeID:      NodeREST, Badge: "AI-READY: TRUE", BadgeEmphasis: emphasis.Accent,
		},
	}
}

// Stat is a labeled value.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Stats returns the header stats of the dashboard.
func Stats() []Stat {
	return []Stat{
		{Label: "FRESHNESS", Value: "< 4min"},
		{Label: "RECORDS", Value: "12.4M"},
		{Label: "DOMAINS", Value: "3 connected"},
	}
}

// Overlay returns the stats painted in the corner of the lineage canvas.
func Overlay() []Stat {
	return []Stat{
		{Label: "SOURCES", Value: "3"},
		{Label: "TRANSFORMS", Value: "7"},
		{Label: "LATENCY", Value: "3.8min"},
	}
}
