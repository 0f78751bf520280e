package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// startMockBackend serves canned JSON for the two backend endpoints.
func startMockBackend(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDataOverview(t *testing.T) {
	srv := startMockBackend(t, http.StatusOK, OverviewResponse{
		TotalRecords: 20,
		Columns:      []string{"date", "region", "sales", "revenue", "customers"},
		Summary: OverviewSummary{
			TotalRevenue:   1000,
			TotalSales:     10,
			TotalCustomers: 5,
			Regions:        []string{"North", "South"},
		},
	})

	client := NewClient(srv.URL)
	got, err := client.DataOverview(context.Background())
	if err != nil {
		t.Fatalf("DataOverview: %v", err)
	}

	if got.Summary.TotalRevenue != 1000 {
		t.Errorf("total_revenue = %d, want 1000", got.Summary.TotalRevenue)
	}
	if got.TotalRecords != 20 {
		t.Errorf("total_records = %d, want 20", got.TotalRecords)
	}
	if len(got.Summary.Regions) != 2 || got.Summary.Regions[0] != "North" {
		t.Errorf("regions = %v", got.Summary.Regions)
	}
}

func TestDataOverviewServerError(t *testing.T) {
	srv := startMockBackend(t, http.StatusInternalServerError, map[string]string{"detail": "Data not loaded"})

	client := NewClient(srv.URL)
	_, err := client.DataOverview(context.Background())
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if got := err.Error(); got != "data overview failed: Data not loaded" {
		t.Errorf("err = %q", got)
	}
}

func TestQuery(t *testing.T) {
	var received QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(QueryResponse{
			Response: "Revenue is strongest in the North.",
			Agent:    "SAGE",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Query(context.Background(), "which region leads on revenue?")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if received.Query != "which region leads on revenue?" {
		t.Errorf("sent query = %q", received.Query)
	}
	if got.Response != "Revenue is strongest in the North." {
		t.Errorf("response = %q", got.Response)
	}
}

func TestQueryConnectionRefused(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url)
	if _, err := client.Query(context.Background(), "anyone home?"); err == nil {
		t.Fatal("expected error when backend is unreachable")
	}
}
