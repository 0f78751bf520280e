// Package dataset loads the sales CSV into an in-memory SQLite database and
// answers the aggregate queries the analytics agent needs.
package dataset

// Overview holds the aggregate metrics for the dashboard snapshot.
type Overview struct {
	TotalRecords   int
	Columns        []string
	TotalSales     int64
	TotalRevenue   int64
	TotalCustomers int64
	Regions        []string
}

// RegionMetric is one region's summed value for a metric.
type RegionMetric struct {
	Region string
	Value  int64
}

// TrendPoint is one date's summed sales, revenue and customers.
type TrendPoint struct {
	Date      string
	Sales     int64
	Revenue   int64
	Customers int64
}

// CustomerMetrics summarizes the customer columns.
type CustomerMetrics struct {
	TotalCustomers        int64
	AvgRevenuePerCustomer float64
	ByRegion              map[string]int64
}
