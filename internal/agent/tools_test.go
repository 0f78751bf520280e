package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsetRevenueByRegion(t *testing.T) {
	ts := NewToolset(fixtureStore(t))

	all := ts.Execute("get_revenue_by_region", map[string]any{})
	byRegion, ok := all["revenue_by_region"].(map[string]any)
	require.True(t, ok, "result = %v", all)
	assert.Equal(t, int64(700), byRegion["North"])

	one := ts.Execute("get_revenue_by_region", map[string]any{"region": "south"})
	assert.Equal(t, "South", one["region"])
	assert.Equal(t, int64(300), one["total_revenue"])

	missing := ts.Execute("get_revenue_by_region", map[string]any{"region": "Mars"})
	assert.Contains(t, missing, "error")
}

func TestToolsetTopPerformers(t *testing.T) {
	ts := NewToolset(fixtureStore(t))

	// Model-sourced arguments arrive as float64.
	top := ts.Execute("get_top_performers", map[string]any{"metric": "customers", "limit": float64(1)})
	require.Len(t, top, 1)
	assert.Equal(t, int64(3), top["North"])

	bad := ts.Execute("get_top_performers", map[string]any{"metric": "profit"})
	assert.Contains(t, bad, "error")
}

func TestToolsetTrends(t *testing.T) {
	ts := NewToolset(fixtureStore(t))

	trends := ts.Execute("analyze_trends", nil)
	require.Contains(t, trends, "2024-01-01")
	day, ok := trends["2024-01-01"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(500), day["revenue"])
}

func TestToolsetCustomerMetrics(t *testing.T) {
	ts := NewToolset(fixtureStore(t))

	cm := ts.Execute("get_customer_metrics", nil)
	assert.Equal(t, int64(5), cm["total_customers"])
	assert.Equal(t, 200.0, cm["avg_revenue_per_customer"])
}

func TestToolsetUnknownTool(t *testing.T) {
	ts := NewToolset(fixtureStore(t))

	out := ts.Execute("launch_missiles", nil)
	assert.Contains(t, out, "error")
}
