package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// OpenSessionResponse is returned when a dashboard session is opened. The
// token ties subsequent requests to the created workspaces.
type OpenSessionResponse struct {
	Message      string               `json:"message"`
	WorkspaceID  string               `json:"workspace_id"`
	SessionToken string               `json:"session_token"`
	Preferences  models.UiPreferences `json:"preferences"`
}

// ToggleSelectionRequest toggles a single row's selection.
type ToggleSelectionRequest struct {
	ID string `json:"id" validate:"required"`
}

// SelectionResponse reports the selection after a mutation.
type SelectionResponse struct {
	Message   string   `json:"message"`
	Selection []string `json:"selection"`
}

// OpenModalRequest activates an overlay. Record-scoped kinds require a
// record id; opening any overlay implicitly closes the previous one.
type OpenModalRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=viewing editing deleting creating"`
	RecordID string `json:"record_id" validate:"omitempty"`
}

// ModalResponse reports the active overlay after a transition.
type ModalResponse struct {
	Message string            `json:"message"`
	Modal   models.ModalState `json:"modal"`
}
