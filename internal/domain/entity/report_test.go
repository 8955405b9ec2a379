package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRPM(t *testing.T) {
	assert.Equal(t, 20.0, CalculateRPM(100.0, 5000))
	assert.Equal(t, 0.0, CalculateRPM(100.0, 0))
	assert.Equal(t, 0.0, CalculateRPM(100.0, -1))
	assert.Equal(t, 0.0, CalculateRPM(0, 5000))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 50.0, PercentChange(150, 100))
	assert.Equal(t, -25.0, PercentChange(75, 100))
	assert.Equal(t, 0.0, PercentChange(100, 100))

	// Sem base de comparação não há variação definida.
	assert.Equal(t, 0.0, PercentChange(100, 0))
	assert.Equal(t, 0.0, PercentChange(100, -5))
}

func TestProjectMonthlyRevenue(t *testing.T) {
	// $300 em 30 dias projeta $300 no mês.
	assert.Equal(t, 300.0, ProjectMonthlyRevenue(300, 30))
	// $70 em 7 dias projeta $300 no mês.
	assert.Equal(t, 300.0, ProjectMonthlyRevenue(70, 7))
	assert.Equal(t, 0.0, ProjectMonthlyRevenue(0, 30))
	assert.Equal(t, 0.0, ProjectMonthlyRevenue(100, 0))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345))
	assert.Equal(t, 12.34, Round2(12.344))
	assert.Equal(t, -1.5, Round1(-1.45))
	assert.Equal(t, 3.1, Round1(3.14))
}

func TestMonetizationReportJSONContract(t *testing.T) {
	report := MonetizationReport{
		SchemaVersion: SchemaVersion,
		LastUpdated:   "2024-01-01 12:00:00 UTC",
		PeriodStart:   "2023-12-02",
		PeriodEnd:     "2023-12-31",
		TotalRevenue:  100.00,
		TotalViews:    5000,
		AdTypeBreakdown: map[string]AdTypeShare{
			"Auction Instream": {Percentage: 80.0, Revenue: 80.00},
		},
		TopEarningVideos: []VideoEarnings{
			{Title: "Video abc123", Revenue: 42.0, Views: 1000, VideoID: "abc123"},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Nomes de campo são o contrato com o viewer e não podem mudar.
	for _, key := range []string{
		"schema_version", "last_updated", "period_start", "period_end",
		"total_revenue", "cpm", "rpm", "monetized_playbacks",
		"ad_impressions", "total_views", "revenue_change", "rpm_change",
		"cpm_change", "playbacks_change", "revenue_chart",
		"ad_type_breakdown", "top_earning_videos", "projected_monthly_revenue",
	} {
		assert.Contains(t, decoded, key)
	}

	assert.Equal(t, float64(SchemaVersion), decoded["schema_version"])
	assert.Equal(t, 100.00, decoded["total_revenue"])
	assert.Equal(t, float64(5000), decoded["total_views"])
}
