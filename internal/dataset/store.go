package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// requiredColumns must all be present in the CSV header (case-insensitive).
var requiredColumns = []string{"date", "region", "sales", "revenue", "customers"}

// Store answers aggregate queries over the loaded sales data.
type Store struct {
	db      *sql.DB
	records int
	columns []string
}

// Open loads the CSV at path into a fresh in-memory database.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads CSV records from r and builds the store.
func Load(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	// Normalize headers the way the data pipeline expects: trimmed, lowered.
	idx := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		columns[i] = name
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("data file missing column %q", col)
		}
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE sales (
			date      TEXT    NOT NULL,
			region    TEXT    NOT NULL,
			sales     INTEGER NOT NULL,
			revenue   INTEGER NOT NULL,
			customers INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, columns: columns}

	insert, err := db.Prepare(`INSERT INTO sales (date, region, sales, revenue, customers) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("read csv: %w", err)
		}

		sales, err := intField(record, idx["sales"], "sales", line)
		if err != nil {
			db.Close()
			return nil, err
		}
		revenue, err := intField(record, idx["revenue"], "revenue", line)
		if err != nil {
			db.Close()
			return nil, err
		}
		customers, err := intField(record, idx["customers"], "customers", line)
		if err != nil {
			db.Close()
			return nil, err
		}

		if _, err := insert.Exec(
			strings.TrimSpace(record[idx["date"]]),
			strings.TrimSpace(record[idx["region"]]),
			sales, revenue, customers,
		); err != nil {
			db.Close()
			return nil, fmt.Errorf("insert row %d: %w", line, err)
		}
		s.records++
	}

	return s, nil
}

func intField(record []string, i int, name string, line int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(record[i]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad %s value %q", line, name, record[i])
	}
	return v, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// TotalRecords returns the number of loaded rows.
func (s *Store) TotalRecords() int { return s.records }

// Columns returns the normalized CSV column names.
func (s *Store) Columns() []string { return s.columns }

// Overview computes the dashboard snapshot: totals plus the region list in
// order of first appearance.
func (s *Store) Overview() (Overview, error) {
	o := Overview{TotalRecords: s.records, Columns: s.columns}

	row := s.db.QueryRow(`SELECT COALESCE(SUM(sales),0), COALESCE(SUM(revenue),0), COALESCE(SUM(customers),0) FROM sales`)
	if err := row.Scan(&o.TotalSales, &o.TotalRevenue, &o.TotalCustomers); err != nil {
		return Overview{}, fmt.Errorf("scan totals: %w", err)
	}

	rows, err := s.db.Query(`SELECT region FROM sales GROUP BY region ORDER BY MIN(rowid)`)
	if err != nil {
		return Overview{}, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return Overview{}, fmt.Errorf("scan region: %w", err)
		}
		o.Regions = append(o.Regions, region)
	}
	return o, rows.Err()
}

// RevenueByRegion sums revenue per region. With a non-empty region the
// result holds that single region (matched case-insensitively).
func (s *Store) RevenueByRegion(region string) (map[string]int64, error) {
	query := `SELECT region, SUM(revenue) FROM sales GROUP BY region ORDER BY MIN(rowid)`
	args := []any{}
	if region != "" {
		query = `SELECT region, SUM(revenue) FROM sales WHERE lower(region) = lower(?) GROUP BY region`
		args = append(args, region)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var name string
		var revenue int64
		if err := rows.Scan(&name, &revenue); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out[name] = revenue
	}
	return out, rows.Err()
}

// TopPerformers ranks regions by the summed metric, highest first.
func (s *Store) TopPerformers(metric string, limit int) ([]RegionMetric, error) {
	metric = strings.ToLower(strings.TrimSpace(metric))
	switch metric {
	case "sales", "revenue", "customers":
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
	if limit <= 0 {
		limit = 3
	}

	// metric is whitelisted above, safe to interpolate.
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT region, SUM(%s) AS total FROM sales GROUP BY region ORDER BY total DESC LIMIT ?`, metric),
		limit)
	if err != nil {
		return nil, fmt.Errorf("query top performers: %w", err)
	}
	defer rows.Close()

	var out []RegionMetric
	for rows.Next() {
		var rm RegionMetric
		if err := rows.Scan(&rm.Region, &rm.Value); err != nil {
			return nil, fmt.Errorf("scan top performer: %w", err)
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// Trends sums sales, revenue and customers per date, ordered by date.
func (s *Store) Trends() ([]TrendPoint, error) {
	rows, err := s.db.Query(`
		SELECT date, SUM(sales), SUM(revenue), SUM(customers)
		FROM sales
		GROUP BY date
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var tp TrendPoint
		if err := rows.Scan(&tp.Date, &tp.Sales, &tp.Revenue, &tp.Customers); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// CustomerMetrics computes customer totals and revenue per customer.
func (s *Store) CustomerMetrics() (CustomerMetrics, error) {
	cm := CustomerMetrics{ByRegion: make(map[string]int64)}

	var revenue int64
	row := s.db.QueryRow(`SELECT COALESCE(SUM(customers),0), COALESCE(SUM(revenue),0) FROM sales`)
	if err := row.Scan(&cm.TotalCustomers, &revenue); err != nil {
		return CustomerMetrics{}, fmt.Errorf("scan customer totals: %w", err)
	}
	if cm.TotalCustomers > 0 {
		cm.AvgRevenuePerCustomer = float64(revenue) / float64(cm.TotalCustomers)
	}

	rows, err := s.db.Query(`SELECT region, SUM(customers) FROM sales GROUP BY region`)
	if err != nil {
		return CustomerMetrics{}, fmt.Errorf("query customers by region: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var region string
		var customers int64
		if err := rows.Scan(&region, &customers); err != nil {
			return CustomerMetrics{}, fmt.Errorf("scan customers: %w", err)
		}
		cm.ByRegion[region] = customers
	}
	return cm, rows.Err()
}

// Head returns the first n rows as generic records, the shape the query
// endpoint attaches as data_summary.
func (s *Store) Head(n int) ([]map[string]any, error) {
	rows, err := s.db.Query(`SELECT date, region, sales, revenue, customers FROM sales ORDER BY rowid LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query head: %w", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var date, region string
		var sales, revenue, customers int64
		if err := rows.Scan(&date, &region, &sales, &revenue, &customers); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, map[string]any{
			"date":      date,
			"region":    region,
			"sales":     sales,
			"revenue":   revenue,
			"customers": customers,
		})
	}
	return out, rows.Err()
}
