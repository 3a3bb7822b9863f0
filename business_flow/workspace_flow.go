package businessflow

import (
	"context"
	"errors"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/services"
	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/repository"
)

// preferencesOwner keys the stored UI preferences. The dashboard serves a
// single admin team, so preferences are shared across sessions.
const preferencesOwner = "admin"

// WorkspaceFlow exposes the session, selection, overlay and preferences
// use cases shared by every entity table.
type WorkspaceFlow interface {
	OpenSession(ctx context.Context) (*dto.OpenSessionResponse, error)
	ResolveSession(token string) (*DashboardSession, error)

	ToggleSelection(ctx context.Context, session *DashboardSession, entity string, id string) (*dto.SelectionResponse, error)
	ToggleSelectPage(ctx context.Context, session *DashboardSession, entity string) (*dto.SelectionResponse, error)
	ClearSelection(ctx context.Context, session *DashboardSession, entity string) (*dto.SelectionResponse, error)

	OpenModal(ctx context.Context, session *DashboardSession, entity string, req *dto.OpenModalRequest) (*dto.ModalResponse, error)
	CloseModal(ctx context.Context, session *DashboardSession, entity string) (*dto.ModalResponse, error)

	GetPreferences(ctx context.Context) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

// WorkspaceFlowImpl implements WorkspaceFlow
type WorkspaceFlowImpl struct {
	registry *SessionRegistry
	tokens   services.SessionTokenService
	prefs    repository.PreferencesStore
	tutors   repository.TutorStore
	courses  repository.CourseStore
	users    repository.UserStore
}

// NewWorkspaceFlow creates a new workspace management flow
func NewWorkspaceFlow(
	registry *SessionRegistry,
	tokens services.SessionTokenService,
	prefs repository.PreferencesStore,
	tutors repository.TutorStore,
	courses repository.CourseStore,
	users repository.UserStore,
) WorkspaceFlow {
	return &WorkspaceFlowImpl{
		registry: registry,
		tokens:   tokens,
		prefs:    prefs,
		tutors:   tutors,
		courses:  courses,
		users:    users,
	}
}

// OpenSession creates fresh workspaces for every entity table and issues a
// token that ties subsequent requests to them. Stored preferences seed the
// default page size.
func (f *WorkspaceFlowImpl) OpenSession(ctx context.Context) (*dto.OpenSessionResponse, error) {
	prefs, err := f.prefs.Get(ctx, preferencesOwner)
	if err != nil {
		prefs = models.DefaultPreferences()
	}

	session := f.registry.Create(prefs.PageSize)
	token, err := f.tokens.IssueToken(session.ID)
	if err != nil {
		return nil, NewBusinessError("SESSION_TOKEN_FAILED", "Failed to issue session token", err)
	}

	return &dto.OpenSessionResponse{
		Message:      "Dashboard session opened",
		WorkspaceID:  session.ID,
		SessionToken: token,
		Preferences:  prefs,
	}, nil
}

// ResolveSession validates a session token and returns the live session it
// refers to.
func (f *WorkspaceFlowImpl) ResolveSession(token string) (*DashboardSession, error) {
	claims, err := f.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, services.ErrSessionTokenExpired) {
			return nil, NewBusinessError("SESSION_TOKEN_EXPIRED", "Session token has expired", err)
		}
		return nil, NewBusinessError("SESSION_TOKEN_INVALID", "Session token is invalid", err)
	}
	session, err := f.registry.Get(claims.WorkspaceID)
	if err != nil {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Dashboard session not found", err)
	}
	return session, nil
}

// ToggleSelection flips one row's membership in the entity's selection.
func (f *WorkspaceFlowImpl) ToggleSelection(ctx context.Context, session *DashboardSession, entity string, id string) (*dto.SelectionResponse, error) {
	resp := &dto.SelectionResponse{Message: "Selection updated"}
	err := f.withSelection(session, entity, func(s models.SelectionSet, _ []string) {
		s.ToggleOne(id)
		resp.Selection = s.IDs()
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ToggleSelectPage selects every row on the current page, or deselects
// them all when every one is already selected. Rows selected on other
// pages are untouched.
func (f *WorkspaceFlowImpl) ToggleSelectPage(ctx context.Context, session *DashboardSession, entity string) (*dto.SelectionResponse, error) {
	resp := &dto.SelectionResponse{Message: "Selection updated"}
	err := f.withSelection(session, entity, func(s models.SelectionSet, pageIDs []string) {
		s.ToggleAllOnPage(pageIDs)
		resp.Selection = s.IDs()
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ClearSelection empties the entity's selection.
func (f *WorkspaceFlowImpl) ClearSelection(ctx context.Context, session *DashboardSession, entity string) (*dto.SelectionResponse, error) {
	resp := &dto.SelectionResponse{Message: "Selection cleared", Selection: []string{}}
	err := f.withSelection(session, entity, func(s models.SelectionSet, _ []string) {
		s.Clear()
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// withSelection runs fn with the entity's selection and the ids of the
// currently visible page, under the workspace lock.
func (f *WorkspaceFlowImpl) withSelection(session *DashboardSession, entity string, fn func(s models.SelectionSet, pageIDs []string)) error {
	switch entity {
	case models.EntityTutors:
		return session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
			fn(w.Selection, repository.ListTutors(f.tutors, w).PageIDs())
			return nil
		})
	case models.EntityCourses:
		return session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
			fn(w.Selection, repository.ListCourses(f.courses, w).PageIDs())
			return nil
		})
	case models.EntityUsers:
		return session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
			fn(w.Selection, repository.ListUsers(f.users, w).PageIDs())
			return nil
		})
	}
	return NewBusinessError("INVALID_ENTITY_KIND", "Unknown entity kind", ErrInvalidEntityKind)
}

// OpenModal activates an overlay for the entity's table. Record-scoped
// kinds require an id that still resolves in the loaded collection.
// Opening an overlay implicitly closes the previous one.
func (f *WorkspaceFlowImpl) OpenModal(ctx context.Context, session *DashboardSession, entity string, req *dto.OpenModalRequest) (*dto.ModalResponse, error) {
	kind := models.ModalKind(req.Kind)
	var modal models.ModalState
	switch kind {
	case models.ModalCreating:
		modal = models.CreatingModal()
	case models.ModalViewing, models.ModalEditing, models.ModalDeleting:
		if req.RecordID == "" {
			return nil, NewBusinessError("MODAL_RECORD_REQUIRED", "This overlay requires a record id", ErrModalRecordRequired)
		}
		if !f.recordExists(entity, req.RecordID) {
			return nil, NewBusinessError("MODAL_RECORD_MISSING", "Referenced record no longer exists", ErrModalRecordMissing)
		}
		switch kind {
		case models.ModalViewing:
			modal = models.ViewingModal(req.RecordID)
		case models.ModalEditing:
			modal = models.EditingModal(req.RecordID)
		default:
			modal = models.DeletingModal(req.RecordID)
		}
	default:
		return nil, NewBusinessError("INVALID_MODAL_KIND", "Unknown overlay kind", nil)
	}

	resp := &dto.ModalResponse{Message: "Overlay opened"}
	err := f.withModal(session, entity, func(w interface{ OpenModal(models.ModalState) }) {
		w.OpenModal(modal)
	})
	if err != nil {
		return nil, err
	}
	resp.Modal = modal
	return resp, nil
}

// CloseModal returns the entity's overlay to the closed state.
func (f *WorkspaceFlowImpl) CloseModal(ctx context.Context, session *DashboardSession, entity string) (*dto.ModalResponse, error) {
	err := f.withModal(session, entity, func(w interface{ OpenModal(models.ModalState) }) {
		w.OpenModal(models.ClosedModal())
	})
	if err != nil {
		return nil, err
	}
	return &dto.ModalResponse{Message: "Overlay closed", Modal: models.ClosedModal()}, nil
}

func (f *WorkspaceFlowImpl) withModal(session *DashboardSession, entity string, fn func(w interface{ OpenModal(models.ModalState) })) error {
	switch entity {
	case models.EntityTutors:
		return session.WithTutors(func(w *models.TableWorkspace[models.TutorFilter, models.TutorSortKey]) error {
			fn(w)
			return nil
		})
	case models.EntityCourses:
		return session.WithCourses(func(w *models.TableWorkspace[models.CourseFilter, models.CourseSortKey]) error {
			fn(w)
			return nil
		})
	case models.EntityUsers:
		return session.WithUsers(func(w *models.TableWorkspace[models.UserFilter, models.UserSortKey]) error {
			fn(w)
			return nil
		})
	}
	return NewBusinessError("INVALID_ENTITY_KIND", "Unknown entity kind", ErrInvalidEntityKind)
}

func (f *WorkspaceFlowImpl) recordExists(entity, id string) bool {
	switch entity {
	case models.EntityTutors:
		_, ok := f.tutors.ByID(id)
		return ok
	case models.EntityCourses:
		_, ok := f.courses.ByID(id)
		return ok
	case models.EntityUsers:
		_, ok := f.users.ByID(id)
		return ok
	}
	return false
}

// GetPreferences reads the stored UI preferences, falling back to defaults
// when nothing is stored yet.
func (f *WorkspaceFlowImpl) GetPreferences(ctx context.Context) (*dto.PreferencesResponse, error) {
	prefs, err := f.prefs.Get(ctx, preferencesOwner)
	if err != nil {
		return nil, NewBusinessError("PREFERENCES_READ_FAILED", "Failed to read preferences", err)
	}
	return &dto.PreferencesResponse{Message: "Preferences retrieved successfully", Preferences: prefs}, nil
}

// UpdatePreferences applies the provided fields and persists the result
// immediately. Omitted fields keep their stored values.
func (f *WorkspaceFlowImpl) UpdatePreferences(ctx context.Context, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	prefs, err := f.prefs.Get(ctx, preferencesOwner)
	if err != nil {
		prefs = models.DefaultPreferences()
	}
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.SidebarCollapsed != nil {
		prefs.SidebarCollapsed = *req.SidebarCollapsed
	}
	if req.PageSize != nil {
		prefs.PageSize = *req.PageSize
	}
	prefs = prefs.Normalized()

	if err := f.prefs.Save(ctx, preferencesOwner, prefs); err != nil {
		return nil, NewBusinessError("PREFERENCES_WRITE_FAILED", "Failed to save preferences", err)
	}
	return &dto.PreferencesResponse{Message: "Preferences updated successfully", Preferences: prefs}, nil
}
