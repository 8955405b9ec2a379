package entity

import "math"

// SchemaVersion identifica a versão do contrato do artefato JSON.
// Mudanças no schema devem ser apenas aditivas.
const SchemaVersion = 1

// CoreMetrics holds the headline monetization figures for a reporting window.
type CoreMetrics struct {
	Revenue            float64
	CPM                float64
	MonetizedPlaybacks int64
	AdImpressions      int64
	Views              int64
}

// DailyRevenue represents the revenue earned on a single day, used for the
// trend chart.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// AdTypeRevenue represents the revenue attributed to a single ad type.
type AdTypeRevenue struct {
	AdType  string  `json:"ad_type"`
	Revenue float64 `json:"revenue"`
}

// AdTypeShare é a fatia de um tipo de anúncio no artefato publicado.
type AdTypeShare struct {
	Percentage float64 `json:"percentage"`
	Revenue    float64 `json:"revenue"`
}

// VideoEarnings represents the revenue and views of a single video.
type VideoEarnings struct {
	Title   string  `json:"title"`
	Revenue float64 `json:"revenue"`
	Views   int64   `json:"views"`
	VideoID string  `json:"video_id"`
}

// RevenueChart holds the daily revenue series in the label/value layout the
// dashboard chart consumes. Labels are formatted as "Jan 02".
type RevenueChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// MonetizationReport is the published artifact and the only wire contract
// between the fetcher and the viewer.
type MonetizationReport struct {
	SchemaVersion           int                    `json:"schema_version"`
	LastUpdated             string                 `json:"last_updated"`
	PeriodStart             string                 `json:"period_start"`
	PeriodEnd               string                 `json:"period_end"`
	TotalRevenue            float64                `json:"total_revenue"`
	CPM                     float64                `json:"cpm"`
	RPM                     float64                `json:"rpm"`
	MonetizedPlaybacks      int64                  `json:"monetized_playbacks"`
	AdImpressions           int64                  `json:"ad_impressions"`
	TotalViews              int64                  `json:"total_views"`
	RevenueChange           float64                `json:"revenue_change"`
	RPMChange               float64                `json:"rpm_change"`
	CPMChange               float64                `json:"cpm_change"`
	PlaybacksChange         float64                `json:"playbacks_change"`
	RevenueChart            RevenueChart           `json:"revenue_chart"`
	AdTypeBreakdown         map[string]AdTypeShare `json:"ad_type_breakdown"`
	TopEarningVideos        []VideoEarnings        `json:"top_earning_videos"`
	ProjectedMonthlyRevenue float64                `json:"projected_monthly_revenue"`
}

// CalculateRPM retorna a receita por mil visualizações.
func CalculateRPM(revenue float64, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return (revenue / float64(views)) * 1000
}

// PercentChange retorna a variação percentual entre dois valores.
// Retorna 0 quando o período anterior não tem base de comparação.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}

// ProjectMonthlyRevenue projects a 30-day month from the average daily pace
// of the reporting window.
func ProjectMonthlyRevenue(totalRevenue float64, daysInPeriod int) float64 {
	if totalRevenue <= 0 || daysInPeriod <= 0 {
		return 0
	}
	return Round2((totalRevenue / float64(daysInPeriod)) * 30)
}

// Round2 arredonda para 2 casas decimais (valores monetários).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 arredonda para 1 casa decimal (variações percentuais).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
