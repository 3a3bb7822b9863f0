package businessflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/app/services"
	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/repository"
)

type fakeStatisticsAPI struct {
	dashboard *models.ServerAggregateStats
	entity    *models.ServerEntityStats
	err       error
}

func (f *fakeStatisticsAPI) DashboardStatistics(_ context.Context) (*models.ServerAggregateStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard, nil
}

func (f *fakeStatisticsAPI) EntityStatistics(_ context.Context, _ string) (*models.ServerEntityStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entity, nil
}

func newStatisticsFixture(api services.StatisticsAPI) (StatisticsFlow, *repository.InMemoryTutorStore) {
	tutors := repository.NewTutorStore()
	flow := NewStatisticsFlow(api, tutors, repository.NewCourseStore(), repository.NewUserStore())
	return flow, tutors
}

func TestDashboardStatisticsProxiesBackend(t *testing.T) {
	api := &fakeStatisticsAPI{dashboard: &models.ServerAggregateStats{
		TotalTutors:   42,
		TotalCourses:  17,
		AverageRating: 4.6,
	}}
	flow, _ := newStatisticsFixture(api)

	resp, err := flow.DashboardStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, resp.Server.TotalTutors)
	assert.Equal(t, 17, resp.Server.TotalCourses)
}

func TestDashboardStatisticsBackendFailure(t *testing.T) {
	api := &fakeStatisticsAPI{err: &services.UpstreamError{Code: "BACKEND_UNREACHABLE", Message: "Academy backend is unreachable", Transient: true}}
	flow, _ := newStatisticsFixture(api)

	_, err := flow.DashboardStatistics(context.Background())

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "DASHBOARD_STATISTICS_FAILED", be.Code)
	assert.Equal(t, "Academy backend is unreachable", be.Message)
}

func TestEntityStatisticsValidatesKind(t *testing.T) {
	api := &fakeStatisticsAPI{entity: &models.ServerEntityStats{Entity: models.EntityTutors, Total: 42}}
	flow, _ := newStatisticsFixture(api)

	resp, err := flow.EntityStatistics(context.Background(), models.EntityTutors)
	require.NoError(t, err)
	assert.Equal(t, 42, resp.Server.Total)

	_, err = flow.EntityStatistics(context.Background(), "lessons")
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_ENTITY_KIND", be.Code)
}

func TestDerivedStatisticsUsesLoadedCollection(t *testing.T) {
	flow, tutors := newStatisticsFixture(&fakeStatisticsAPI{})
	tutors.CompleteLoad([]models.Tutor{
		{ID: "t1", Status: models.TutorStatusActive, Rating: 4.8, Students: 10},
		{ID: "t2", Status: models.TutorStatusOnLeave, Rating: 4.0, Students: 5},
	})

	resp, err := flow.DerivedStatistics(context.Background(), models.EntityTutors)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Client.Total)
	assert.Equal(t, 1, resp.Client.ByStatus[models.TutorStatusActive])
	assert.Equal(t, 15, resp.Client.TotalStudents)
	assert.InDelta(t, 4.4, resp.Client.AverageRating, 1e-9)
}

func TestDerivedStatisticsUnknownEntity(t *testing.T) {
	flow, _ := newStatisticsFixture(&fakeStatisticsAPI{})

	_, err := flow.DerivedStatistics(context.Background(), "lessons")

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_ENTITY_KIND", be.Code)
}
