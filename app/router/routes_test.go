package router

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/middleware"
	businessflow "github.com/alfurqan/academy-admin/business_flow"
	"github.com/alfurqan/academy-admin/utils"
)

// Handler stubs answer with a route marker so dispatch tests can assert
// which registration won.

func marker(name string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.SendString(name)
	}
}

type stubTutorHandler struct{}

func (stubTutorHandler) ListTutors(c fiber.Ctx) error            { return marker("tutor.list")(c) }
func (stubTutorHandler) GetTutor(c fiber.Ctx) error              { return marker("tutor.get")(c) }
func (stubTutorHandler) CreateTutor(c fiber.Ctx) error           { return marker("tutor.create")(c) }
func (stubTutorHandler) UpdateTutor(c fiber.Ctx) error           { return marker("tutor.update")(c) }
func (stubTutorHandler) ToggleTutorStatus(c fiber.Ctx) error     { return marker("tutor.toggle")(c) }
func (stubTutorHandler) DeleteTutor(c fiber.Ctx) error           { return marker("tutor.delete")(c) }
func (stubTutorHandler) BulkToggleTutorStatus(c fiber.Ctx) error { return marker("tutor.bulkToggle")(c) }
func (stubTutorHandler) BulkDeleteTutors(c fiber.Ctx) error      { return marker("tutor.bulkDelete")(c) }
func (stubTutorHandler) ReloadTutors(c fiber.Ctx) error          { return marker("tutor.reload")(c) }

type stubCourseHandler struct{}

func (stubCourseHandler) ListCourses(c fiber.Ctx) error        { return marker("course.list")(c) }
func (stubCourseHandler) GetCourse(c fiber.Ctx) error          { return marker("course.get")(c) }
func (stubCourseHandler) CreateCourse(c fiber.Ctx) error       { return marker("course.create")(c) }
func (stubCourseHandler) UpdateCourse(c fiber.Ctx) error       { return marker("course.update")(c) }
func (stubCourseHandler) ToggleCourseStatus(c fiber.Ctx) error { return marker("course.toggle")(c) }
func (stubCourseHandler) DeleteCourse(c fiber.Ctx) error       { return marker("course.delete")(c) }
func (stubCourseHandler) BulkToggleCourseStatus(c fiber.Ctx) error {
	return marker("course.bulkToggle")(c)
}
func (stubCourseHandler) BulkDeleteCourses(c fiber.Ctx) error { return marker("course.bulkDelete")(c) }
func (stubCourseHandler) ReloadCourses(c fiber.Ctx) error     { return marker("course.reload")(c) }

type stubUserHandler struct{}

func (stubUserHandler) ListUsers(c fiber.Ctx) error            { return marker("user.list")(c) }
func (stubUserHandler) GetUser(c fiber.Ctx) error              { return marker("user.get")(c) }
func (stubUserHandler) CreateUser(c fiber.Ctx) error           { return marker("user.create")(c) }
func (stubUserHandler) UpdateUser(c fiber.Ctx) error           { return marker("user.update")(c) }
func (stubUserHandler) ToggleUserStatus(c fiber.Ctx) error     { return marker("user.toggle")(c) }
func (stubUserHandler) DeleteUser(c fiber.Ctx) error           { return marker("user.delete")(c) }
func (stubUserHandler) BulkToggleUserStatus(c fiber.Ctx) error { return marker("user.bulkToggle")(c) }
func (stubUserHandler) BulkDeleteUsers(c fiber.Ctx) error      { return marker("user.bulkDelete")(c) }
func (stubUserHandler) ReloadUsers(c fiber.Ctx) error          { return marker("user.reload")(c) }

type stubWorkspaceHandler struct{}

func (stubWorkspaceHandler) OpenSession(c fiber.Ctx) error     { return marker("workspace.session")(c) }
func (stubWorkspaceHandler) ToggleSelection(c fiber.Ctx) error { return marker("workspace.toggle")(c) }
func (stubWorkspaceHandler) ToggleSelectPage(c fiber.Ctx) error {
	return marker("workspace.togglePage")(c)
}
func (stubWorkspaceHandler) ClearSelection(c fiber.Ctx) error { return marker("workspace.clear")(c) }
func (stubWorkspaceHandler) OpenModal(c fiber.Ctx) error      { return marker("workspace.openModal")(c) }
func (stubWorkspaceHandler) CloseModal(c fiber.Ctx) error     { return marker("workspace.closeModal")(c) }
func (stubWorkspaceHandler) GetPreferences(c fiber.Ctx) error { return marker("workspace.getPrefs")(c) }
func (stubWorkspaceHandler) UpdatePreferences(c fiber.Ctx) error {
	return marker("workspace.updatePrefs")(c)
}

type stubStatisticsHandler struct{}

func (stubStatisticsHandler) DashboardStatistics(c fiber.Ctx) error {
	return marker("stats.dashboard")(c)
}
func (stubStatisticsHandler) EntityStatistics(c fiber.Ctx) error { return marker("stats.entity")(c) }
func (stubStatisticsHandler) DerivedStatistics(c fiber.Ctx) error {
	return marker("stats.derived")(c)
}

// stubWorkspaceFlow resolves every token to a fixed session so routing can
// be tested without a real token service.
type stubWorkspaceFlow struct {
	session *businessflow.DashboardSession
}

func (f *stubWorkspaceFlow) OpenSession(context.Context) (*dto.OpenSessionResponse, error) {
	return &dto.OpenSessionResponse{}, nil
}

func (f *stubWorkspaceFlow) ResolveSession(string) (*businessflow.DashboardSession, error) {
	return f.session, nil
}

func (f *stubWorkspaceFlow) ToggleSelection(context.Context, *businessflow.DashboardSession, string, string) (*dto.SelectionResponse, error) {
	return &dto.SelectionResponse{}, nil
}

func (f *stubWorkspaceFlow) ToggleSelectPage(context.Context, *businessflow.DashboardSession, string) (*dto.SelectionResponse, error) {
	return &dto.SelectionResponse{}, nil
}

func (f *stubWorkspaceFlow) ClearSelection(context.Context, *businessflow.DashboardSession, string) (*dto.SelectionResponse, error) {
	return &dto.SelectionResponse{}, nil
}

func (f *stubWorkspaceFlow) OpenModal(context.Context, *businessflow.DashboardSession, string, *dto.OpenModalRequest) (*dto.ModalResponse, error) {
	return &dto.ModalResponse{}, nil
}

func (f *stubWorkspaceFlow) CloseModal(context.Context, *businessflow.DashboardSession, string) (*dto.ModalResponse, error) {
	return &dto.ModalResponse{}, nil
}

func (f *stubWorkspaceFlow) GetPreferences(context.Context) (*dto.PreferencesResponse, error) {
	return &dto.PreferencesResponse{}, nil
}

func (f *stubWorkspaceFlow) UpdatePreferences(context.Context, *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	return &dto.PreferencesResponse{}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	registry := businessflow.NewSessionRegistry(0)
	t.Cleanup(registry.Close)

	r := NewFiberRouter(
		Config{AppName: "routing-test"},
		stubTutorHandler{},
		stubCourseHandler{},
		stubUserHandler{},
		stubWorkspaceHandler{},
		stubStatisticsHandler{},
		middleware.NewSessionMiddleware(&stubWorkspaceFlow{session: registry.Create(6)}),
	)
	r.SetupRoutes()
	return r.GetApp()
}

func dispatch(t *testing.T, app *fiber.App, method, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Workspace-Token", "test-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestDerivedStatsRoutePrecedesEntityID(t *testing.T) {
	app := newTestApp(t)

	for _, entity := range []string{"tutors", "courses", "users"} {
		t.Run(entity, func(t *testing.T) {
			status, body := dispatch(t, app, fiber.MethodGet, "/api/v1/admin/"+entity+"/stats")
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, "stats.derived", body)
		})
	}
}

func TestEntityIDRouteStillDispatches(t *testing.T) {
	app := newTestApp(t)

	status, body := dispatch(t, app, fiber.MethodGet, "/api/v1/admin/tutors/t1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "tutor.get", body)

	status, body = dispatch(t, app, fiber.MethodGet, "/api/v1/admin/courses/c1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "course.get", body)
}

func TestServerStatsRoutesDoNotCollide(t *testing.T) {
	app := newTestApp(t)

	status, body := dispatch(t, app, fiber.MethodGet, "/api/v1/admin/statistics/dashboard")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "stats.dashboard", body)

	status, body = dispatch(t, app, fiber.MethodGet, "/api/v1/admin/statistics/tutors")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "stats.entity", body)
}

func TestSessionBootstrapIsTokenless(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/admin/session", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "workspace.session", string(body))
}

func TestMetricsServedOnConfiguredPath(t *testing.T) {
	registry := businessflow.NewSessionRegistry(0)
	t.Cleanup(registry.Close)

	r := NewFiberRouter(
		Config{AppName: "routing-test", EnableMetrics: true, MetricsPath: "/internal/metrics"},
		stubTutorHandler{},
		stubCourseHandler{},
		stubUserHandler{},
		stubWorkspaceHandler{},
		stubStatisticsHandler{},
		middleware.NewSessionMiddleware(&stubWorkspaceFlow{session: registry.Create(6)}),
	)
	r.SetupRoutes()

	resp, err := r.GetApp().Test(httptest.NewRequest(fiber.MethodGet, "/internal/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestConfigFallbacks(t *testing.T) {
	var cfg Config

	assert.Equal(t, "/metrics", cfg.metricsPath())
	assert.Equal(t, int(utils.MultipartMemoryLimit), cfg.bodyLimit())
	assert.Equal(t, 10*time.Second, durationOr(cfg.ReadTimeout, 10*time.Second))
	assert.Equal(t, time.Minute, durationOr(time.Minute, 10*time.Second))
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/tutors/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
