package models

import (
	"github.com/alfurqan/academy-admin/utils"
)

// Theme values for the admin UI
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UiPreferences is the process-wide settings record for the admin UI,
// persisted on every change instead of scattered ad-hoc storage reads.
type UiPreferences struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	PageSize         int    `json:"page_size"`
}

// DefaultPreferences returns the fallback preferences used when nothing has
// been persisted yet.
func DefaultPreferences() UiPreferences {
	return UiPreferences{
		Theme:            ThemeLight,
		SidebarCollapsed: false,
		PageSize:         utils.DefaultPageSize,
	}
}

// Normalized fills invalid fields with defaults so stored garbage can never
// break the dashboard.
func (p UiPreferences) Normalized() UiPreferences {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if p.PageSize <= 0 || p.PageSize > utils.MaxPageSize {
		p.PageSize = utils.DefaultPageSize
	}
	return p
}
