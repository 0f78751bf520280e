// Package backend provides the HTTP client and wire types for talking to the
// SAGE analytics backend over JSON.
package backend

// OverviewSummary holds the aggregate business metrics shown on the dashboard.
type OverviewSummary struct {
	TotalRevenue   int64    `json:"total_revenue"`
	TotalSales     int64    `json:"total_sales"`
	TotalCustomers int64    `json:"total_customers"`
	Regions        []string `json:"regions"`
}

// OverviewResponse is returned by GET /api/data-overview.
type OverviewResponse struct {
	TotalRecords int             `json:"total_records"`
	Columns      []string        `json:"columns"`
	Summary      OverviewSummary `json:"summary"`
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is returned by POST /api/query.
type QueryResponse struct {
	Response    string           `json:"response"`
	Agent       string           `json:"agent,omitempty"`
	DataSummary []map[string]any `json:"data_summary,omitempty"`
}

// apiError carries the backend's error detail on non-2xx statuses.
type apiError struct {
	Detail string `json:"detail"`
}
