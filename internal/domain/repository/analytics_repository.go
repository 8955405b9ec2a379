package repository

import (
	"context"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
)

// AnalyticsRepository defines the interface for the video platform's
// reporting and metadata APIs.
type AnalyticsRepository interface {
	// Revenue Operations
	GetCoreMetrics(ctx context.Context, window entity.ReportingWindow) (entity.CoreMetrics, error)
	GetPreviousPeriodMetrics(ctx context.Context, window entity.ReportingWindow) (entity.CoreMetrics, error)
	GetDailyRevenue(ctx context.Context, window entity.ReportingWindow) ([]entity.DailyRevenue, error)
	GetAdTypeRevenue(ctx context.Context, window entity.ReportingWindow) ([]entity.AdTypeRevenue, error)

	// Video Operations
	GetTopEarningVideos(ctx context.Context, window entity.ReportingWindow, maxResults int64) ([]entity.VideoEarnings, error)
	GetVideoTitles(ctx context.Context, videoIDs []string) (map[string]string, error)
}
