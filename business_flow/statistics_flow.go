package businessflow

import (
	"context"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/services"
	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/repository"
)

// StatisticsFlow exposes the dashboard statistics use cases. Backend
// aggregates and locally derived counts come from different universes and
// are served by separate operations so the two never mix.
type StatisticsFlow interface {
	DashboardStatistics(ctx context.Context) (*dto.DashboardStatisticsResponse, error)
	EntityStatistics(ctx context.Context, entity string) (*dto.EntityStatisticsResponse, error)
	DerivedStatistics(ctx context.Context, entity string) (*dto.DerivedStatisticsResponse, error)
}

// StatisticsFlowImpl implements StatisticsFlow
type StatisticsFlowImpl struct {
	api     services.StatisticsAPI
	tutors  repository.TutorStore
	courses repository.CourseStore
	users   repository.UserStore
}

// NewStatisticsFlow creates a new statistics flow
func NewStatisticsFlow(api services.StatisticsAPI, tutors repository.TutorStore, courses repository.CourseStore, users repository.UserStore) StatisticsFlow {
	return &StatisticsFlowImpl{api: api, tutors: tutors, courses: courses, users: users}
}

// DashboardStatistics proxies the backend-computed dashboard summary.
func (f *StatisticsFlowImpl) DashboardStatistics(ctx context.Context) (*dto.DashboardStatisticsResponse, error) {
	stats, err := f.api.DashboardStatistics(ctx)
	if err != nil {
		return nil, upstreamBusinessError("DASHBOARD_STATISTICS_FAILED", err)
	}
	return &dto.DashboardStatisticsResponse{
		Message: "Dashboard statistics retrieved successfully",
		Server:  *stats,
	}, nil
}

// EntityStatistics proxies the backend-computed summary for one entity
// kind.
func (f *StatisticsFlowImpl) EntityStatistics(ctx context.Context, entity string) (*dto.EntityStatisticsResponse, error) {
	if !models.IsValidEntityKind(entity) {
		return nil, NewBusinessError("INVALID_ENTITY_KIND", "Unknown entity kind", ErrInvalidEntityKind)
	}
	stats, err := f.api.EntityStatistics(ctx, entity)
	if err != nil {
		return nil, upstreamBusinessError("ENTITY_STATISTICS_FAILED", err)
	}
	return &dto.EntityStatisticsResponse{
		Message: "Entity statistics retrieved successfully",
		Server:  *stats,
	}, nil
}

// DerivedStatistics aggregates the loaded collection for the stat cards.
// It reflects whatever is loaded right now, independent of active filters,
// and may diverge from the backend aggregates.
func (f *StatisticsFlowImpl) DerivedStatistics(ctx context.Context, entity string) (*dto.DerivedStatisticsResponse, error) {
	var stats models.ClientDerivedStats
	switch entity {
	case models.EntityTutors:
		stats = models.DeriveTutorStats(f.tutors.Snapshot())
	case models.EntityCourses:
		stats = models.DeriveCourseStats(f.courses.Snapshot())
	case models.EntityUsers:
		stats = models.DeriveUserStats(f.users.Snapshot())
	default:
		return nil, NewBusinessError("INVALID_ENTITY_KIND", "Unknown entity kind", ErrInvalidEntityKind)
	}
	return &dto.DerivedStatisticsResponse{
		Message: "Derived statistics computed successfully",
		Client:  stats,
	}, nil
}
