package agent

import (
	"fmt"
	"math"

	"sage/internal/dataset"

	"github.com/google/generative-ai-go/genai"
)

// Toolset exposes the dataset aggregates as callable agent tools.
type Toolset struct {
	ds *dataset.Store
}

// NewToolset wraps the dataset store.
func NewToolset(ds *dataset.Store) *Toolset {
	return &Toolset{ds: ds}
}

// Declarations describes the tools for the model.
func (t *Toolset) Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "get_revenue_by_region",
			Description: "Get revenue data by region. With no region argument, returns all regions.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"region": {
						Type:        genai.TypeString,
						Description: "Optional region name (North, South, East, West).",
					},
				},
			},
		},
		{
			Name:        "get_top_performers",
			Description: "Get top performing regions by a specified metric.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"metric": {
						Type:        genai.TypeString,
						Description: "Metric to rank by: revenue, sales, or customers.",
					},
					"limit": {
						Type:        genai.TypeInteger,
						Description: "Number of top results to return.",
					},
				},
			},
		},
		{
			Name:        "analyze_trends",
			Description: "Analyze sales trends over time, grouped by date.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		},
		{
			Name:        "get_customer_metrics",
			Description: "Get customer-related metrics and statistics.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		},
	}
}

// Execute runs a named tool. Failures come back in-band as an error field,
// so the model can recover instead of the request aborting.
func (t *Toolset) Execute(name string, args map[string]any) map[string]any {
	switch name {
	case "get_revenue_by_region":
		region, _ := args["region"].(string)
		revenue, err := t.ds.RevenueByRegion(region)
		if err != nil {
			return errResult(err)
		}
		if region != "" {
			for name, total := range revenue {
				return map[string]any{"region": name, "total_revenue": total}
			}
			return errResult(fmt.Errorf("region %q not found", region))
		}
		byRegion := make(map[string]any, len(revenue))
		for name, total := range revenue {
			byRegion[name] = total
		}
		return map[string]any{"revenue_by_region": byRegion}

	case "get_top_performers":
		metric := "revenue"
		if s, ok := args["metric"].(string); ok && s != "" {
			metric = s
		}
		limit := 3
		if f, ok := args["limit"].(float64); ok && f > 0 {
			limit = int(f)
		}
		top, err := t.ds.TopPerformers(metric, limit)
		if err != nil {
			return errResult(err)
		}
		out := make(map[string]any, len(top))
		for _, rm := range top {
			out[rm.Region] = rm.Value
		}
		return out

	case "analyze_trends":
		trends, err := t.ds.Trends()
		if err != nil {
			return errResult(err)
		}
		out := make(map[string]any, len(trends))
		for _, tp := range trends {
			out[tp.Date] = map[string]any{
				"sales":     tp.Sales,
				"revenue":   tp.Revenue,
				"customers": tp.Customers,
			}
		}
		return out

	case "get_customer_metrics":
		cm, err := t.ds.CustomerMetrics()
		if err != nil {
			return errResult(err)
		}
		byRegion := make(map[string]any, len(cm.ByRegion))
		for name, customers := range cm.ByRegion {
			byRegion[name] = customers
		}
		return map[string]any{
			"total_customers":          cm.TotalCustomers,
			"avg_revenue_per_customer": math.Round(cm.AvgRevenuePerCustomer*100) / 100,
			"customers_by_region":      byRegion,
		}

	default:
		return errResult(fmt.Errorf("unknown tool %q", name))
	}
}

func errResult(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
