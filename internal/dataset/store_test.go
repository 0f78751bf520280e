package dataset

import (
	"strings"
	"testing"
)

const fixtureCSV = ` Date ,Region,Sales,Revenue,Customers
2024-01-01,North,3,300,2
2024-01-01,South,2,200,1
2024-01-02,North,4,400,1
2024-01-02,South,1,100,1
`

func openFixture(t *testing.T) *Store {
	t.Helper()
	s, err := Load(strings.NewReader(fixtureCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOverview(t *testing.T) {
	s := openFixture(t)

	o, err := s.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if o.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", o.TotalRecords)
	}
	if o.TotalRevenue != 1000 {
		t.Errorf("TotalRevenue = %d, want 1000", o.TotalRevenue)
	}
	if o.TotalSales != 10 {
		t.Errorf("TotalSales = %d, want 10", o.TotalSales)
	}
	if o.TotalCustomers != 5 {
		t.Errorf("TotalCustomers = %d, want 5", o.TotalCustomers)
	}
	if len(o.Regions) != 2 || o.Regions[0] != "North" || o.Regions[1] != "South" {
		t.Errorf("Regions = %v, want first-appearance order [North South]", o.Regions)
	}
	if o.Columns[0] != "date" {
		t.Errorf("Columns = %v, want normalized header names", o.Columns)
	}
}

func TestRevenueByRegion(t *testing.T) {
	s := openFixture(t)

	all, err := s.RevenueByRegion("")
	if err != nil {
		t.Fatalf("RevenueByRegion: %v", err)
	}
	if all["North"] != 700 || all["South"] != 300 {
		t.Errorf("all regions = %v", all)
	}

	one, err := s.RevenueByRegion("north")
	if err != nil {
		t.Fatalf("RevenueByRegion(north): %v", err)
	}
	if len(one) != 1 || one["North"] != 700 {
		t.Errorf("single region = %v, want case-insensitive match", one)
	}
}

func TestTopPerformers(t *testing.T) {
	s := openFixture(t)

	top, err := s.TopPerformers("revenue", 1)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(top) != 1 || top[0].Region != "North" || top[0].Value != 700 {
		t.Errorf("top = %v", top)
	}

	if _, err := s.TopPerformers("profit", 3); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestTrends(t *testing.T) {
	s := openFixture(t)

	trends, err := s.Trends()
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("trends = %d points, want 2", len(trends))
	}
	if trends[0].Date != "2024-01-01" || trends[0].Revenue != 500 {
		t.Errorf("first point = %+v", trends[0])
	}
	if trends[1].Sales != 5 {
		t.Errorf("second point sales = %d, want 5", trends[1].Sales)
	}
}

func TestCustomerMetrics(t *testing.T) {
	s := openFixture(t)

	cm, err := s.CustomerMetrics()
	if err != nil {
		t.Fatalf("CustomerMetrics: %v", err)
	}
	if cm.TotalCustomers != 5 {
		t.Errorf("TotalCustomers = %d, want 5", cm.TotalCustomers)
	}
	if cm.AvgRevenuePerCustomer != 200 {
		t.Errorf("AvgRevenuePerCustomer = %v, want 200", cm.AvgRevenuePerCustomer)
	}
	if cm.ByRegion["North"] != 3 {
		t.Errorf("ByRegion = %v", cm.ByRegion)
	}
}

func TestHead(t *testing.T) {
	s := openFixture(t)

	head, err := s.Head(2)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if len(head) != 2 {
		t.Fatalf("head = %d rows, want 2", len(head))
	}
	if head[0]["region"] != "North" {
		t.Errorf("head[0] = %v", head[0])
	}
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load(strings.NewReader("date,region,sales\n2024-01-01,North,3\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "revenue") {
		t.Errorf("err = %v, want mention of the missing column", err)
	}
}

func TestLoadBadValue(t *testing.T) {
	_, err := Load(strings.NewReader("date,region,sales,revenue,customers\n2024-01-01,North,three,300,2\n"))
	if err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}
