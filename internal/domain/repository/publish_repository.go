package repository

import (
	"context"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
)

// PublishRepository defines the interface for publishing the report artifact.
// Publish must be atomic from the viewer's point of view: a reader never
// observes a partially written artifact, and a failed publish leaves the
// previous artifact untouched.
type PublishRepository interface {
	Publish(ctx context.Context, report entity.MonetizationReport) (string, error)
}
