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

// UserFlow exposes the user management use cases
type UserFlow interface {
	LoadUsers(ctx context.Context) error
	ListUsers(ctx context.Context, session *DashboardSession, query *dto.UserListQuery) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, session *DashboardSession, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ToggleUserStatus(ctx context.Context, id string) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, session *DashboardSession, id string) error
	BulkToggleUserStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
	BulkDeleteUsers(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error)
}

// UserFlowImpl implements UserFlow
type UserFlowImpl struct {
	store  repository.UserStore
	api    services.UserAPI
	loadMu sync.Mutex
}

// NewUserFlow creates a new user management flow
func NewUserFlow(store repository.UserStore, api services.UserAPI) UserFlow {
	return &UserFlowImpl{store: store, api: api}
}

// LoadUsers replaces the in-memory collection with the backend snapshot.
func (f *UserFlowImpl) LoadUsers(ctx context.Context) error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	f.store.BeginLoad()
	users, err := f.api.ListUsers(ctx)
	if err != nil {
		f.store.FailLoad(err)
		return upstreamBusinessError("LOAD_USERS_FAILED", err)
	}
	f.store.CompleteLoad(users)
	return nil
}

func (f *UserFlowImpl) ensureLoaded(ctx context.Context) {
	if f.store.State() == repository.StateNotLoaded {
		_ = f.LoadUsers(ctx)
	}
}

// ListUsers applies any workspace overrides from the query and derives the
// current table page.
func (f *UserFlowImpl) ListUsers(ctx context.Context, session *DashboardSession, query *dto.UserListQuery) (*dto.UserListResponse, error) {
	f.ensureLoaded(ctx)

	resp := &dto.UserListResponse{State: string(f.store.State())}
	err := session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
		if err := applyUserQuery(w, query); err != nil {
			return err
		}

		switch f.store.State() {
		case repository.StateReady:
			result := repository.ListUsers(f.store, w)
			w.Page.CurrentPage = result.CurrentPage
			resp.Message = "Users retrieved successfully"
			resp.Items = result.Items
			resp.Pagination = paginationDTO(result.TotalItems, result.TotalPages, result.CurrentPage, result.PageSize)
			resp.State = string(repository.StateReady)
		case repository.StateFailed:
			resp.Message = FailureMessage(f.store.LoadError())
			resp.Items = []models.User{}
			resp.Pagination = paginationDTO(0, 1, 1, w.Page.PageSize)
		default:
			resp.Message = "Users are loading"
			resp.Items = []models.User{}
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

func applyUserQuery(w *models.TableWorkspace[models.UserFilter, models.UserSortKey], q *dto.UserListQuery) error {
	if q == nil {
		return nil
	}
	if q.Search != nil {
		w.SetSearch(strings.TrimSpace(*q.Search))
	}

	filter := w.Filter.Normalized()
	if q.Role != nil {
		filter.Role = models.NormalizeFilterValue(*q.Role)
	}
	if q.Status != nil {
		filter.Status = models.NormalizeFilterValue(*q.Status)
	}
	if q.Gender != nil {
		filter.Gender = models.NormalizeFilterValue(*q.Gender)
	}
	if filter != w.Filter.Normalized() {
		w.SetFilter(filter)
	}

	if q.SortBy != nil {
		key := models.UserSortKey(*q.SortBy)
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

// GetUser returns one user from the loaded collection.
func (f *UserFlowImpl) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	f.ensureLoaded(ctx)
	user, ok := f.store.ByID(id)
	if !ok {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	return &dto.UserResponse{Message: "User retrieved successfully", User: user}, nil
}

// CreateUser forwards the create to the backend and prepends the canonical
// record.
func (f *UserFlowImpl) CreateUser(ctx context.Context, session *DashboardSession, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := f.api.CreateUser(ctx, req)
	if err != nil {
		return nil, upstreamBusinessError("CREATE_USER_FAILED", err)
	}
	f.store.Prepend(*user)
	closeUserModal(session)
	return &dto.UserResponse{Message: "User created successfully", User: *user}, nil
}

// UpdateUser forwards a full update and replaces the record in place.
func (f *UserFlowImpl) UpdateUser(ctx context.Context, session *DashboardSession, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := f.api.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, upstreamBusinessError("UPDATE_USER_FAILED", err)
	}
	if !f.store.Replace(*user) {
		f.store.Prepend(*user)
	}
	closeUserModal(session)
	return &dto.UserResponse{Message: "User updated successfully", User: *user}, nil
}

// ToggleUserStatus flips the user's status through the dedicated endpoint.
func (f *UserFlowImpl) ToggleUserStatus(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := f.api.ToggleUserStatus(ctx, id)
	if err != nil {
		return nil, upstreamBusinessError("TOGGLE_USER_STATUS_FAILED", err)
	}
	if !f.store.Replace(*user) {
		f.store.Prepend(*user)
	}
	return &dto.UserResponse{Message: "User status updated successfully", User: *user}, nil
}

// DeleteUser forwards the delete and drops the record from the collection
// and the acting session's selection.
func (f *UserFlowImpl) DeleteUser(ctx context.Context, session *DashboardSession, id string) error {
	if err := f.api.DeleteUser(ctx, id); err != nil {
		return upstreamBusinessError("DELETE_USER_FAILED", err)
	}
	f.store.Remove(id)
	if session != nil {
		_ = session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
			w.Selection.Remove(id)
			w.CloseModal()
			return nil
		})
	}
	return nil
}

// BulkToggleUserStatus toggles every selected user with per-id results.
func (f *UserFlowImpl) BulkToggleUserStatus(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeUserSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		user, err := f.api.ToggleUserStatus(ctx, id)
		if err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		if !f.store.Replace(*user) {
			f.store.Prepend(*user)
		}
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearUserSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk status update finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

// BulkDeleteUsers deletes every selected user with per-id results.
func (f *UserFlowImpl) BulkDeleteUsers(ctx context.Context, session *DashboardSession) (*dto.BulkResponse, error) {
	ids, err := takeUserSelection(session)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkItemResult, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		if err := f.api.DeleteUser(ctx, id); err != nil {
			results = append(results, dto.BulkItemResult{ID: id, Success: false, Message: FailureMessage(err)})
			continue
		}
		f.store.Remove(id)
		results = append(results, dto.BulkItemResult{ID: id, Success: true})
		succeeded++
	}

	clearUserSelection(session)
	return &dto.BulkResponse{
		Message:   "Bulk delete finished",
		Succeeded: succeeded,
		Failed:    len(ids) - succeeded,
		Results:   results,
	}, nil
}

func takeUserSelection(session *DashboardSession) ([]string, error) {
	var ids []string
	err := session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
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

func clearUserSelection(session *DashboardSession) {
	_ = session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
		w.Selection.Clear()
		return nil
	})
}

func closeUserModal(session *DashboardSession) {
	if session == nil {
		return
	}
	_ = session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
		w.CloseModal()
		return nil
	})
}
