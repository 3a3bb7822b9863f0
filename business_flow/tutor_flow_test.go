package businessflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/services"
	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/repository"
	"github.com/alfurqan/academy-admin/utils"
)

// fakeTutorAPI is an in-memory stand-in for the academy backend. Methods
// fail for ids listed in failIDs so bulk tests can mix outcomes.
type fakeTutorAPI struct {
	tutors   []models.Tutor
	listErr  error
	failIDs  map[string]bool
	nextID   int
	listCall int
}

func newFakeTutorAPI(tutors ...models.Tutor) *fakeTutorAPI {
	return &fakeTutorAPI{tutors: tutors, failIDs: make(map[string]bool), nextID: 100}
}

func (f *fakeTutorAPI) ListTutors(_ context.Context) ([]models.Tutor, error) {
	f.listCall++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Tutor, len(f.tutors))
	copy(out, f.tutors)
	return out, nil
}

func (f *fakeTutorAPI) GetTutor(_ context.Context, id string) (*models.Tutor, error) {
	for _, t := range f.tutors {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, &services.UpstreamError{Code: "BACKEND_ERROR", Message: "Tutor not found", Status: 404}
}

func (f *fakeTutorAPI) CreateTutor(_ context.Context, payload any, _ *services.Upload) (*models.Tutor, error) {
	req, ok := payload.(*dto.CreateTutorRequest)
	if !ok {
		return nil, &services.UpstreamError{Code: "BACKEND_REJECTED", Message: "Unexpected payload"}
	}
	if f.failIDs["create"] {
		return nil, &services.UpstreamError{Code: "BACKEND_REJECTED", Message: "Email already registered", Status: 200}
	}
	f.nextID++
	tutor := models.Tutor{
		ID:       fmt.Sprintf("t%d", f.nextID),
		Name:     req.Name,
		Email:    req.Email,
		Gender:   req.Gender,
		Status:   req.Status,
		Subjects: req.Subjects,
	}
	f.tutors = append(f.tutors, tutor)
	return &tutor, nil
}

func (f *fakeTutorAPI) UpdateTutor(_ context.Context, id string, payload any, _ *services.Upload) (*models.Tutor, error) {
	if f.failIDs[id] {
		return nil, &services.UpstreamError{Code: "BACKEND_ERROR", Message: "Update rejected", Status: 422}
	}
	req, _ := payload.(*dto.UpdateTutorRequest)
	tutor := models.Tutor{ID: id, Name: req.Name, Email: req.Email, Gender: req.Gender, Status: req.Status, Subjects: req.Subjects}
	return &tutor, nil
}

func (f *fakeTutorAPI) ToggleTutorStatus(_ context.Context, id string) (*models.Tutor, error) {
	if f.failIDs[id] {
		return nil, &services.UpstreamError{Code: "BACKEND_ERROR", Message: "Toggle failed", Status: 500, Transient: true}
	}
	for _, t := range f.tutors {
		if t.ID == id {
			if t.Status == models.TutorStatusActive {
				t.Status = models.TutorStatusInactive
			} else {
				t.Status = models.TutorStatusActive
			}
			return &t, nil
		}
	}
	return nil, &services.UpstreamError{Code: "BACKEND_ERROR", Message: "Tutor not found", Status: 404}
}

func (f *fakeTutorAPI) DeleteTutor(_ context.Context, id string) error {
	if f.failIDs[id] {
		return &services.UpstreamError{Code: "BACKEND_ERROR", Message: "Delete failed", Status: 500, Transient: true}
	}
	return nil
}

func seedTutor(id, name string, rating float64) models.Tutor {
	return models.Tutor{
		ID:       id,
		Name:     name,
		Email:    id + "@alfurqan.example",
		Gender:   models.GenderMale,
		Status:   models.TutorStatusActive,
		Subjects: []string{models.SubjectTajweed},
		Rating:   rating,
	}
}

func newTutorFlowFixture(t *testing.T, api services.TutorAPI) (TutorFlow, repository.TutorStore, *DashboardSession, *SessionRegistry) {
	t.Helper()
	store := repository.NewTutorStore()
	flow := NewTutorFlow(store, api)
	registry := NewSessionRegistry(0)
	t.Cleanup(registry.Close)
	session := registry.Create(6)
	return flow, store, session, registry
}

func TestListTutorsLoadsOnFirstAccess(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5), seedTutor("t2", "Bilal", 4.0))
	flow, store, session, _ := newTutorFlowFixture(t, api)

	resp, err := flow.ListTutors(context.Background(), session, nil)

	require.NoError(t, err)
	assert.Equal(t, string(repository.StateReady), resp.State)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, api.listCall)

	// Subsequent lists reuse the loaded collection
	_, err = flow.ListTutors(context.Background(), session, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCall)
}

func TestListTutorsFailedLoadReportsState(t *testing.T) {
	api := newFakeTutorAPI()
	api.listErr = &services.UpstreamError{Code: "BACKEND_UNREACHABLE", Message: "Academy backend is unreachable", Transient: true}
	flow, _, session, _ := newTutorFlowFixture(t, api)

	resp, err := flow.ListTutors(context.Background(), session, nil)

	require.NoError(t, err)
	assert.Equal(t, string(repository.StateFailed), resp.State)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "Academy backend is unreachable", resp.Message)

	// A failed load is not retried implicitly
	_, err = flow.ListTutors(context.Background(), session, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCall)

	// Explicit reload recovers
	api.listErr = nil
	api.tutors = []models.Tutor{seedTutor("t1", "Ahmad", 4.5)}
	require.NoError(t, flow.LoadTutors(context.Background()))

	resp, err = flow.ListTutors(context.Background(), session, nil)
	require.NoError(t, err)
	assert.Equal(t, string(repository.StateReady), resp.State)
	assert.Len(t, resp.Items, 1)
}

func TestListTutorsFilterChangeResetsPage(t *testing.T) {
	tutors := make([]models.Tutor, 0, 12)
	for i := 1; i <= 12; i++ {
		tutors = append(tutors, seedTutor(fmt.Sprintf("t%02d", i), fmt.Sprintf("Tutor %02d", i), 4.0))
	}
	api := newFakeTutorAPI(tutors...)
	flow, _, session, _ := newTutorFlowFixture(t, api)

	resp, err := flow.ListTutors(context.Background(), session, &dto.TutorListQuery{Page: utils.ToPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)

	// Changing a filter snaps back to page 1
	resp, err = flow.ListTutors(context.Background(), session, &dto.TutorListQuery{Status: utils.ToPtr(models.TutorStatusActive)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)

	// Re-sending the same filter keeps the page
	resp, err = flow.ListTutors(context.Background(), session, &dto.TutorListQuery{Page: utils.ToPtr(2)})
	require.NoError(t, err)
	resp, err = flow.ListTutors(context.Background(), session, &dto.TutorListQuery{Status: utils.ToPtr(models.TutorStatusActive)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestListTutorsInvalidSort(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5))
	flow, _, session, _ := newTutorFlowFixture(t, api)

	_, err := flow.ListTutors(context.Background(), session, &dto.TutorListQuery{SortBy: utils.ToPtr("hourly_rate")})
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_SORT_KEY", be.Code)

	_, err = flow.ListTutors(context.Background(), session, &dto.TutorListQuery{SortBy: utils.ToPtr("rating"), SortDir: utils.ToPtr("downwards")})
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_SORT_DIRECTION", be.Code)

	_, err = flow.ListTutors(context.Background(), session, &dto.TutorListQuery{Page: utils.ToPtr(0)})
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_PAGE", be.Code)
}

func TestGetTutorNotFound(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5))
	flow, _, _, _ := newTutorFlowFixture(t, api)

	_, err := flow.GetTutor(context.Background(), "missing")

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "TUTOR_NOT_FOUND", be.Code)
}

func TestCreateTutorPrependsAndClosesModal(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5))
	flow, store, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.OpenModal(models.CreatingModal())
		return nil
	})

	req := &dto.CreateTutorRequest{
		Name:     "Zaynab Ali",
		Email:    "zaynab@alfurqan.example",
		Gender:   models.GenderFemale,
		Status:   models.TutorStatusActive,
		Subjects: []string{models.SubjectHifz},
	}
	resp, err := flow.CreateTutor(context.Background(), session, req, nil)

	require.NoError(t, err)
	assert.Equal(t, "Zaynab Ali", resp.Tutor.Name)
	assert.NotEmpty(t, resp.Tutor.ID, "id is assigned by the backend")

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, resp.Tutor.ID, snapshot[0].ID, "created record appears first")

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		assert.False(t, w.Modal.IsOpen())
		return nil
	})
}

func TestCreateTutorFailureLeavesModalOpen(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5))
	api.failIDs["create"] = true
	flow, store, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.OpenModal(models.CreatingModal())
		return nil
	})

	req := &dto.CreateTutorRequest{
		Name:     "Zaynab Ali",
		Email:    "zaynab@alfurqan.example",
		Gender:   models.GenderFemale,
		Status:   models.TutorStatusActive,
		Subjects: []string{models.SubjectHifz},
	}
	_, err := flow.CreateTutor(context.Background(), session, req, nil)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "CREATE_TUTOR_FAILED", be.Code)
	assert.Equal(t, "Email already registered", be.Message, "backend message surfaces to the form")

	assert.Equal(t, 1, store.Len(), "collection unchanged on failure")
	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		assert.True(t, w.Modal.IsOpen(), "form stays open for retry")
		return nil
	})
}

func TestUpdateTutorReplacesInPlace(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5), seedTutor("t2", "Bilal", 4.0))
	flow, store, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	req := &dto.UpdateTutorRequest{
		Name:     "Bilal Omar",
		Email:    "t2@alfurqan.example",
		Gender:   models.GenderMale,
		Status:   models.TutorStatusOnLeave,
		Subjects: []string{models.SubjectQiraat},
	}
	resp, err := flow.UpdateTutor(context.Background(), session, "t2", req, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bilal Omar", resp.Tutor.Name)

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "t2", snapshot[1].ID, "updated record keeps its position")
	assert.Equal(t, models.TutorStatusOnLeave, snapshot[1].Status)
}

func TestDeleteTutorRemovesFromSelection(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5), seedTutor("t2", "Bilal", 4.0))
	flow, store, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.Selection.ToggleOne("t1")
		w.Selection.ToggleOne("t2")
		w.OpenModal(models.DeletingModal("t1"))
		return nil
	})

	require.NoError(t, flow.DeleteTutor(context.Background(), session, "t1"))

	assert.Equal(t, 1, store.Len())
	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		assert.Equal(t, []string{"t2"}, w.Selection.IDs())
		assert.False(t, w.Modal.IsOpen())
		return nil
	})
}

func TestBulkToggleContinuesPastFailures(t *testing.T) {
	api := newFakeTutorAPI(
		seedTutor("t1", "Ahmad", 4.5),
		seedTutor("t2", "Bilal", 4.0),
		seedTutor("t3", "Zaynab", 4.9),
	)
	api.failIDs["t2"] = true
	flow, _, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.Selection.ToggleOne("t1")
		w.Selection.ToggleOne("t2")
		w.Selection.ToggleOne("t3")
		return nil
	})

	resp, err := flow.BulkToggleTutorStatus(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)

	byID := make(map[string]dto.BulkItemResult)
	for _, r := range resp.Results {
		byID[r.ID] = r
	}
	assert.True(t, byID["t1"].Success)
	assert.False(t, byID["t2"].Success)
	assert.Equal(t, "Toggle failed", byID["t2"].Message)
	assert.True(t, byID["t3"].Success)

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		assert.Zero(t, w.Selection.Len(), "selection is cleared after a bulk operation")
		return nil
	})
}

func TestBulkDeleteRemovesSucceededOnly(t *testing.T) {
	api := newFakeTutorAPI(
		seedTutor("t1", "Ahmad", 4.5),
		seedTutor("t2", "Bilal", 4.0),
	)
	api.failIDs["t1"] = true
	flow, store, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.Selection.ToggleOne("t1")
		w.Selection.ToggleOne("t2")
		return nil
	})

	resp, err := flow.BulkDeleteTutors(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	_, stillThere := store.ByID("t1")
	assert.True(t, stillThere, "failed delete keeps the record")
	_, gone := store.ByID("t2")
	assert.False(t, gone)
}

func TestBulkWithEmptySelection(t *testing.T) {
	api := newFakeTutorAPI(seedTutor("t1", "Ahmad", 4.5))
	flow, _, session, _ := newTutorFlowFixture(t, api)
	require.NoError(t, flow.LoadTutors(context.Background()))

	_, err := flow.BulkDeleteTutors(context.Background(), session)

	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "SELECTION_EMPTY", be.Code)
	assert.ErrorIs(t, err, ErrSelectionEmpty)
}

func TestUpstreamBusinessErrorFallback(t *testing.T) {
	err := upstreamBusinessError("LOAD_TUTORS_FAILED", errors.New("plain error"))
	assert.Equal(t, "Unexpected backend failure", err.Message)

	wrapped := upstreamBusinessError("LOAD_TUTORS_FAILED", &services.UpstreamError{Message: "Academy backend is unreachable"})
	assert.Equal(t, "Academy backend is unreachable", wrapped.Message)
}
