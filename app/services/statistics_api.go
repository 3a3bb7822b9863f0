package services

import (
	"context"
	"net/url"

	"github.com/alfurqan/academy-admin/models"
)

// StatisticsAPI is the backend's aggregate surface. It computes over the
// backend's own dataset, which may diverge from the gateway's loaded
// collections; the two sources are kept separate on purpose.
type StatisticsAPI interface {
	DashboardStatistics(ctx context.Context) (*models.ServerAggregateStats, error)
	EntityStatistics(ctx context.Context, entity string) (*models.ServerEntityStats, error)
}

// DashboardStatistics fetches the backend-computed dashboard summary.
func (c *AcademyClient) DashboardStatistics(ctx context.Context) (*models.ServerAggregateStats, error) {
	var stats models.ServerAggregateStats
	if err := c.GetJSON(ctx, "/statistics/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// EntityStatistics fetches the backend-computed summary for one entity kind.
func (c *AcademyClient) EntityStatistics(ctx context.Context, entity string) (*models.ServerEntityStats, error) {
	var stats models.ServerEntityStats
	if err := c.GetJSON(ctx, "/statistics/entity/"+url.PathEscape(entity), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
