package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// DashboardStatisticsResponse exposes the backend-computed dashboard
// aggregates. They may diverge from client-derived counts because the
// backend computes over its full dataset.
type DashboardStatisticsResponse struct {
	Message string                      `json:"message"`
	Server  models.ServerAggregateStats `json:"server"`
}

// EntityStatisticsResponse exposes the backend-computed aggregates for one
// entity kind.
type EntityStatisticsResponse struct {
	Message string                   `json:"message"`
	Server  models.ServerEntityStats `json:"server"`
}

// DerivedStatisticsResponse exposes stat-card aggregates derived from the
// gateway's loaded collection, independent of any active filters.
type DerivedStatisticsResponse struct {
	Message string                    `json:"message"`
	Client  models.ClientDerivedStats `json:"client"`
}
