package dto

import (
	"github.com/alfurqan/academy-admin/models"
)

// PreferencesResponse wraps the stored UI preferences.
type PreferencesResponse struct {
	Message     string               `json:"message"`
	Preferences models.UiPreferences `json:"preferences"`
}

// UpdatePreferencesRequest changes UI preferences; omitted fields keep
// their stored values. Every change is persisted immediately.
type UpdatePreferencesRequest struct {
	Theme            *string `json:"theme" validate:"omitempty,oneof=light dark"`
	SidebarCollapsed *bool   `json:"sidebar_collapsed"`
	PageSize         *int    `json:"page_size" validate:"omitempty,min=1,max=100"`
}
