package publish

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
)

func sampleReport() entity.MonetizationReport {
	return entity.MonetizationReport{
		SchemaVersion: entity.SchemaVersion,
		LastUpdated:   "2024-01-01 12:00:00 UTC",
		PeriodStart:   "2023-12-02",
		PeriodEnd:     "2023-12-31",
		TotalRevenue:  123.45,
		TotalViews:    9999,
	}
}

func TestLocalPublisherWritesValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	publisher := NewLocalPublisher(path)

	location, err := publisher.Publish(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(location))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.MonetizationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 123.45, decoded.TotalRevenue)
	assert.Equal(t, int64(9999), decoded.TotalViews)
}

func TestLocalPublisherOverwritesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	publisher := NewLocalPublisher(path)

	first := sampleReport()
	_, err := publisher.Publish(context.Background(), first)
	require.NoError(t, err)

	second := sampleReport()
	second.TotalRevenue = 999.99
	_, err = publisher.Publish(context.Background(), second)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.MonetizationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 999.99, decoded.TotalRevenue)
}

func TestLocalPublisherLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	publisher := NewLocalPublisher(path)

	_, err := publisher.Publish(context.Background(), sampleReport())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.json", entries[0].Name())
}

func TestLocalPublisherDeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.json")
	pathB := filepath.Join(dir, "b.json")

	report := sampleReport()
	report.AdTypeBreakdown = map[string]entity.AdTypeShare{
		"Auction Instream": {Percentage: 60.0, Revenue: 74.07},
		"Auction Display":  {Percentage: 40.0, Revenue: 49.38},
	}

	_, err := NewLocalPublisher(pathA).Publish(context.Background(), report)
	require.NoError(t, err)
	_, err = NewLocalPublisher(pathB).Publish(context.Background(), report)
	require.NoError(t, err)

	dataA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	dataB, err := os.ReadFile(pathB)
	require.NoError(t, err)

	// Mesma entrada gera exatamente os mesmos bytes.
	assert.Equal(t, dataA, dataB)
}
