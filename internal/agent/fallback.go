package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sage/internal/dataset"

	"github.com/dustin/go-humanize"
)

// Fallback answers queries without an LLM by routing keywords to the dataset
// aggregates. It keeps the query wire contract intact when no API key is
// configured, and it is what the handler tests exercise.
type Fallback struct {
	ds *dataset.Store
}

// NewFallback wraps the dataset store.
func NewFallback(ds *dataset.Store) *Fallback {
	return &Fallback{ds: ds}
}

// Name identifies the agent in query responses.
func (f *Fallback) Name() string { return "SAGE (offline)" }

// Answer routes the question by keyword to the matching aggregate.
func (f *Fallback) Answer(_ context.Context, query string) (string, error) {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "trend") || strings.Contains(q, "over time"):
		return f.trends()
	case strings.Contains(q, "customer"):
		return f.customers()
	case strings.Contains(q, "top") || strings.Contains(q, "best") ||
		strings.Contains(q, "highest") || strings.Contains(q, "perform"):
		return f.topPerformers(q)
	case strings.Contains(q, "revenue") || strings.Contains(q, "sales"):
		return f.revenueByRegion()
	default:
		return f.overview()
	}
}

func (f *Fallback) trends() (string, error) {
	trends, err := f.ds.Trends()
	if err != nil {
		return "", err
	}
	if len(trends) == 0 {
		return "There is no trend data to analyze yet.", nil
	}

	first, last := trends[0], trends[len(trends)-1]
	return fmt.Sprintf(
		"Between %s and %s, daily revenue moved from $%s to $%s and daily sales from %s to %s, across %d days of data.",
		first.Date, last.Date,
		humanize.Comma(first.Revenue), humanize.Comma(last.Revenue),
		humanize.Comma(first.Sales), humanize.Comma(last.Sales),
		len(trends)), nil
}

func (f *Fallback) customers() (string, error) {
	cm, err := f.ds.CustomerMetrics()
	if err != nil {
		return "", err
	}

	regions := make([]string, 0, len(cm.ByRegion))
	for region := range cm.ByRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	parts := make([]string, 0, len(regions))
	for _, region := range regions {
		parts = append(parts, fmt.Sprintf("%s %s", region, humanize.Comma(cm.ByRegion[region])))
	}

	return fmt.Sprintf(
		"You have %s customers in total, averaging $%.2f revenue per customer. By region: %s.",
		humanize.Comma(cm.TotalCustomers), cm.AvgRevenuePerCustomer, strings.Join(parts, ", ")), nil
}

func (f *Fallback) topPerformers(q string) (string, error) {
	metric := "revenue"
	if strings.Contains(q, "sales") {
		metric = "sales"
	}

	top, err := f.ds.TopPerformers(metric, 3)
	if err != nil {
		return "", err
	}
	if len(top) == 0 {
		return "There is no regional data to rank yet.", nil
	}

	parts := make([]string, 0, len(top))
	for i, rm := range top {
		value := humanize.Comma(rm.Value)
		if metric == "revenue" {
			value = "$" + value
		}
		parts = append(parts, fmt.Sprintf("%d. %s (%s)", i+1, rm.Region, value))
	}

	return fmt.Sprintf("Top regions by %s: %s. %s is your strongest performer.",
		metric, strings.Join(parts, ", "), top[0].Region), nil
}

func (f *Fallback) revenueByRegion() (string, error) {
	top, err := f.ds.TopPerformers("revenue", 100)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(top))
	for _, rm := range top {
		parts = append(parts, fmt.Sprintf("%s $%s", rm.Region, humanize.Comma(rm.Value)))
	}

	return fmt.Sprintf("Revenue by region, highest first: %s.", strings.Join(parts, ", ")), nil
}

func (f *Fallback) overview() (string, error) {
	o, err := f.ds.Overview()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Across %d records you have $%s in revenue from %s sales and %s customers, spanning %d regions (%s). Ask me about revenue, top performers, trends, or customers.",
		o.TotalRecords, humanize.Comma(o.TotalRevenue), humanize.Comma(o.TotalSales),
		humanize.Comma(o.TotalCustomers), len(o.Regions), strings.Join(o.Regions, ", ")), nil
}
