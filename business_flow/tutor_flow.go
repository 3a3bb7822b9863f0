package businessflow

import (
	"context"
	"strings"
	"sync"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/services"
	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/repository"
)

// TutorFlow exposes the tutor management use cases
type TutorFlow interface {
	LoadTutors(ctx context.Context) error
	ListTutors(ctx context.Context, session *DashboardSession, query *dto.TutorListQuery) (*dto.TutorListResponse, error)
	GetTutor(ctx context.Context, id string) (*dto.TutorResponse, error)
	CreateTutor(ctx context.Context, session *DashboardSession, req *dto.CreateTutorRequest, photo *services.Upload) (*dto.TutorResponse, error)
	UpdateTutor(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateTutorRequest, photo *services.Upload) (*dto.TutorResponse, error)
	ToggleTutorStatus(ctx context.Context, id string) (*dto.TutorResponse, error)
	DeleteTutor(ctx context.Context, session *DashboardSession, id string) error
	BulkToggleTutorStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
	BulkDeleteTutors(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
}

// TutorFlowImpl implements TutorFlow
type TutorFlowImpl struct {
	store  repository.TutorStore
	api    services.TutorAPI
	loadMu sync.Mutex
}

// NewTutorFlow creates a new tutor management flow
func NewTutorFlow(store repository.TutorStore, api services.TutorAPI) TutorFlow {
	return &TutorFlowImpl{store: store, api: api}
}

// LoadTutors replaces the in-memory collection with the backend snapshot.
// A failed load leaves the previous contents in place and requires an
// explicit retry.
func (f *TutorFlowImpl) LoadTutors(ctx context.Context) error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	f.store.BeginLoad()
	tutors, err := f.api.ListTutors(ctx)
	if err != nil {
		f.store.FailLoad(err)
		return upstreamBusinessError("LOAD_TUTORS_FAILED", err)
	}
	f.store.CompleteLoad(tutors)
	return nil
}

// ensureLoaded triggers the initial load on first access. Failed loads are
// not retried here; the list response carries the failure state instead.
func (f *TutorFlowImpl) ensureLoaded(ctx context.Context) {
	if f.store.State() == repository.StateNotLoaded {
		_ = f.LoadTutors(ctx)
	}
}

// ListTutors applies any workspace overrides from the query and derives the
// current table page.
func (f *TutorFlowImpl) ListTutors(ctx context.Context, session *DashboardSession, query *dto.TutorListQuery) (*dto.TutorListResponse, error) {
	f.ensureLoaded(ctx)

	resp := &dto.TutorListResponse{State: string(f.store.State())}
	err := session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		if err := applyTutorQuery(w, query); err != nil {
			return err
		}

		switch f.store.State() {
		case repository.StateReady:
			result := repository.ListTutors(f.store, w)
			w.Page.CurrentPage = result.CurrentPage
			resp.Message = "Tutors retrieved successfully"
			resp.Items = result.Items
			resp.Pagination = paginationDTO(result.TotalItems, result.TotalPages, result.CurrentPage, result.PageSize)
			resp.State = string(repository.StateReady)
		case repository.StateFailed:
			resp.Message = FailureMessage(f.store.LoadError())
			resp.Items = []models.Tutor{}
			resp.Pagination = paginationDTO(0, 1, 1, w.Page.PageSize)
		default:
			resp.Message = "Tutors are loading"
			resp.Items = []models.Tutor{}
			resp.Pagination = paginationDTO(0, 1, 1, w.Page.PageSize)
		}
		resp.Selection = w.Selection.IDs()
		resp.Modal = w.Modal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func applyTutorQuery(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey], q *dto.TutorListQuery) error {
	if q == nil {
		return nil
	}
	if q.Search != nil {
		w.SetSearch(strings.TrimSpace(*q.Search))
	}

	filter := w.Filter.Normalized()
	if q.Status != nil {
		filter.Status = models.NormalizeFilterValue(*q.Status)
	}
	if q.Gender != nil {
		filter.Gender = models.NormalizeFilterValue(*q.Gender)
	}
	if q.Subject != nil {
		filter.Subject = models.NormalizeFilterValue(*q.Subject)
	}
	if filter != w.Filter.Normalized() {
		w.SetFilter(filter)
	}

	if q.SortBy != nil {
		key := models.TutorSortKey(*q.SortBy)
		if !key.Valid() {
			return NewBusinessError("INVALID_SORT_KEY", "Invalid sort key", ErrInvalidSortKey)
		}
		dir := w.SortDir
		if q.SortDir != nil {
			dir = models.SortDirection(*q.SortDir)
			if !dir.Valid() {
				return NewBusinessError("INVALID_SORT_DIRECTION", "Sort direction must be asc or desc", ErrInvalidSortDirection)
			}
		}
		w.SetSort(key, dir)
	} else if q.SortDir != nil {
		dir := models.SortDirection(*q.SortDir)
		if !dir.Valid() {
			return NewBusinessError("INVALID_SORT_DIRECTION", "Sort direction must be asc or desc", ErrInvalidSortDirection)
		}
		w.SetSort(w.SortKey, dir)
	}

	// An explicit page wins over the filter-change reset; it is clamped at
	// derivation time either way.
	if q.Page != nil {
		if *q.Page < 1 {
			return NewBusinessError("INVALID_PAGE", "Page must be at least 1", ErrInvalidPage)
		}
		w.SetPage(*q.Page)
	}
	return nil
}

// GetTutor returns one tutor from the loaded collection.
func (f *TutorFlowImpl) GetTutor(ctx context.Context, id string) (*dto.TutorResponse, error) {
	f.ensureLoaded(ctx)
	tutor, ok := f.store.ByID(id)
	if !ok {
		return nil, NewBusinessError("TUTOR_NOT_FOUND", "Tutor not found", ErrTutorNotFound)
	}
	return &dto.TutorResponse{Message: "Tutor retrieved successfully", Tutor: tutor}, nil
}

// CreateTutor forwards the create to the backend and prepends the canonical
// record. On failure the collection is unchanged and any open overlay stays
// open so the form can be retried.
func (f *TutorFlowImpl) CreateTutor(ctx context.Context, session *DashboardSession, req *dto.CreateTutorRequest, photo *services.Upload) (*dto.TutorResponse, error) {
	tutor, err := f.api.CreateTutor(ctx, req, photo)
	if err != nil {
		return nil, upstreamBusinessError("CREATE_TUTOR_FAILED", err)
	}
	f.store.Prepend(*tutor)
	closeTutorModal(session)
	return &dto.TutorResponse{Message: "Tutor created successfully", Tutor: *tutor}, nil
}

// UpdateTutor forwards a full update and replaces the record in place.
func (f *TutorFlowImpl) UpdateTutor(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateTutorRequest, photo *services.Upload) (*dto.TutorResponse, error) {
	tutor, err := f.api.UpdateTutor(ctx, id, req, photo)
	if err != nil {
		return nil, upstreamBusinessError("UPDATE_TUTOR_FAILED", err)
	}
	if !f.store.Replace(*tutor) {
		f.store.Prepend(*tutor)
	}
	closeTutorModal(session)
	return &dto.TutorResponse{Message: "Tutor updated successfully", Tutor: *tutor}, nil
}

// ToggleTutorStatus flips the tutor's status through the dedicated
// endpoint, with the same replace-in-place semantics as an update.
func (f *TutorFlowImpl) ToggleTutorStatus(ctx context.Context, id string) (*dto.TutorResponse, error) {
	tutor, err := f.api.ToggleTutorStatus(ctx, id)
	if err != nil {
		return nil, upstreamBusinessError("TOGGLE_TUTOR_STATUS_FAILED", err)
	}
	if !f.store.Replace(*tutor) {
		f.store.Prepend(*tutor)
	}
	return &dto.TutorResponse{Message: "Tutor status updated successfully", Tutor: *tutor}, nil
}

// DeleteTutor forwards the delete and drops the record from the collection
// and from the acting session's selection.
func (f *TutorFlowImpl) DeleteTutor(ctx context.Context, session *DashboardSession, id string) error {
	if err := f.api.DeleteTutor(ctx, id); err != nil {
		return upstreamBusinessError("DELETE_TUTOR_FAILED", err)
	}
	f.store.Remove(id)
	if session != nil {
		_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
			w.Selection.Remove(id)
			w.CloseModal()
			return nil
		})
	}
	return nil
}

// BulkToggleTutorStatus toggles every selected tutor. Processing continues
// past individual failures and the per-id outcomes are reported; the
// selection is cleared afterwards.
func (f *TutorFlowImpl) BulkToggleTutorStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeTutorSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		tutor, err := f.api.ToggleTutorStatus(ctx, id)
		if err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		if !f.store.Replace(*tutor) {
			f.store.Prepend(*tutor)
		}
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearTutorSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk status update finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

// BulkDeleteTutors deletes every selected tutor with per-id results.
func (f *TutorFlowImpl) BulkDeleteTutors(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeTutorSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		if err := f.api.DeleteTutor(ctx, id); err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		f.store.Remove(id)
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearTutorSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk delete finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

func takeTutorSelection(session *DashboardSession) ([]string, error) {
	var ids []string
	err := session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		ids = w.Selection.IDs()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, NewBusinessError("SELECTION_EMPTY", "No rows are selected", ErrSelectionEmpty)
	}
	return ids, nil
}

func clearTutorSelection(session *DashboardSession) {
	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.Selection.Clear()
		return nil
	})
}

func closeTutorModal(session *DashboardSession) {
	if session == nil {
		return
	}
	_ = session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
		w.CloseModal()
		return nil
	})
}

func paginationDTO(totalItems, totalPages, currentPage, pageSize int) dto.PaginationDTO {
	return dto.PaginationDTO{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}
