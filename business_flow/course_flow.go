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

// CourseFlow exposes the course management use cases
type CourseFlow interface {
	LoadCourses(ctx context.Context) error
	ListCourses(ctx context.Context, session *DashboardSession, query *dto.CourseListQuery) (*dto.CourseListResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, session *DashboardSession, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	ToggleCourseStatus(ctx context.Context, id string) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, session *DashboardSession, id string) error
	BulkToggleCourseStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
	BulkDeleteCourses(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
}

// CourseFlowImpl implements CourseFlow
type CourseFlowImpl struct {
	store  repository.CourseStore
	api    services.CourseAPI
	loadMu sync.Mutex
}

// NewCourseFlow creates a new course management flow
func NewCourseFlow(store repository.CourseStore, api services.CourseAPI) CourseFlow {
	return &CourseFlowImpl{store: store, api: api}
}

// LoadCourses replaces the in-memory collection with the backend snapshot.
func (f *CourseFlowImpl) LoadCourses(ctx context.Context) error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	f.store.BeginLoad()
	courses, err := f.api.ListCourses(ctx)
	if err != nil {
		f.store.FailLoad(err)
		return upstreamBusinessError("LOAD_COURSES_FAILED", err)
	}
	f.store.CompleteLoad(courses)
	return nil
}

func (f *CourseFlowImpl) ensureLoaded(ctx context.Context) {
	if f.store.State() == repository.StateNotLoaded {
		_ = f.LoadCourses(ctx)
	}
}

// ListCourses applies any workspace overrides from the query and derives
// the current table page.
func (f *CourseFlowImpl) ListCourses(ctx context.Context, session *DashboardSession, query *dto.CourseListQuery) (*dto.CourseListResponse, error) {
	f.ensureLoaded(ctx)

	resp := &dto.CourseListResponse{State: string(f.store.State())}
	err := session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
		if err := applyCourseQuery(w, query); err != nil {
			return err
		}

		switch f.store.State() {
		case repository.StateReady:
			result := repository.ListCourses(f.store, w)
			w.Page.CurrentPage = result.CurrentPage
			resp.Message = "Courses retrieved successfully"
			resp.Items = result.Items
			resp.Pagination = paginationDTO(result.TotalItems, result.TotalPages, result.CurrentPage, result.PageSize)
			resp.State = string(repository.StateReady)
		case repository.StateFailed:
			resp.Message = FailureMessage(f.store.LoadError())
			resp.Items = []models.Course{}
			resp.Pagination = paginationDTO(0, 1, 1, w.Page.PageSize)
		default:
			resp.Message = "Courses are loading"
			resp.Items = []models.Course{}
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

func applyCourseQuery(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey], q *dto.CourseListQuery) error {
	if q == nil {
		return nil
	}
	if q.Search != nil {
		w.SetSearch(strings.TrimSpace(*q.Search))
	}

	filter := w.Filter.Normalized()
	if q.Category != nil {
		filter.Category = models.NormalizeFilterValue(*q.Category)
	}
	if q.Level != nil {
		filter.Level = models.NormalizeFilterValue(*q.Level)
	}
	if q.Status != nil {
		filter.Status = models.NormalizeFilterValue(*q.Status)
	}
	if filter != w.Filter.Normalized() {
		w.SetFilter(filter)
	}

	if q.SortBy != nil {
		key := models.CourseSortKey(*q.SortBy)
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

	if q.Page != nil {
		if *q.Page < 1 {
			return NewBusinessError("INVALID_PAGE", "Page must be at least 1", ErrInvalidPage)
		}
		w.SetPage(*q.Page)
	}
	return nil
}

// GetCourse returns one course from the loaded collection.
func (f *CourseFlowImpl) GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error) {
	f.ensureLoaded(ctx)
	course, ok := f.store.ByID(id)
	if !ok {
		return nil, NewBusinessError("COURSE_NOT_FOUND", "Course not found", ErrCourseNotFound)
	}
	return &dto.CourseResponse{Message: "Course retrieved successfully", Course: course}, nil
}

// CreateCourse forwards the create to the backend and prepends the
// canonical record.
func (f *CourseFlowImpl) CreateCourse(ctx context.Context, session *DashboardSession, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course, err := f.api.CreateCourse(ctx, req)
	if err != nil {
		return nil, upstreamBusinessError("CREATE_COURSE_FAILED", err)
	}
	f.store.Prepend(*course)
	closeCourseModal(session)
	return &dto.CourseResponse{Message: "Course created successfully", Course: *course}, nil
}

// UpdateCourse forwards a full update and replaces the record in place.
func (f *CourseFlowImpl) UpdateCourse(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := f.api.UpdateCourse(ctx, id, req)
	if err != nil {
		return nil, upstreamBusinessError("UPDATE_COURSE_FAILED", err)
	}
	if !f.store.Replace(*course) {
		f.store.Prepend(*course)
	}
	closeCourseModal(session)
	return &dto.CourseResponse{Message: "Course updated successfully", Course: *course}, nil
}

// ToggleCourseStatus flips the course's status through the dedicated
// endpoint.
func (f *CourseFlowImpl) ToggleCourseStatus(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := f.api.ToggleCourseStatus(ctx, id)
	if err != nil {
		return nil, upstreamBusinessError("TOGGLE_COURSE_STATUS_FAILED", err)
	}
	if !f.store.Replace(*course) {
		f.store.Prepend(*course)
	}
	return &dto.CourseResponse{Message: "Course status updated successfully", Course: *course}, nil
}

// DeleteCourse forwards the delete and drops the record from the
// collection and the acting session's selection.
func (f *CourseFlowImpl) DeleteCourse(ctx context.Context, session *DashboardSession, id string) error {
	if err := f.api.DeleteCourse(ctx, id); err != nil {
		return upstreamBusinessError("DELETE_COURSE_FAILED", err)
	}
	f.store.Remove(id)
	if session != nil {
		_ = session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
			w.Selection.Remove(id)
			w.CloseModal()
			return nil
		})
	}
	return nil
}

// BulkToggleCourseStatus toggles every selected course with per-id results.
func (f *CourseFlowImpl) BulkToggleCourseStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeCourseSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		course, err := f.api.ToggleCourseStatus(ctx, id)
		if err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		if !f.store.Replace(*course) {
			f.store.Prepend(*course)
		}
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearCourseSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk status update finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

// BulkDeleteCourses deletes every selected course with per-id results.
func (f *CourseFlowImpl) BulkDeleteCourses(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeCourseSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		if err := f.api.DeleteCourse(ctx, id); err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		f.store.Remove(id)
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearCourseSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk delete finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

func takeCourseSelection(session *DashboardSession) ([]string, error) {
	var ids []string
	err := session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
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

func clearCourseSelection(session *DashboardSession) {
	_ = session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
		w.Selection.Clear()
		return nil
	})
}

func closeCourseModal(session *DashboardSession) {
	if session == nil {
		return
	}
	_ = session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
		w.CloseModal()
		return nil
	})
}
