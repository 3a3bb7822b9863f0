package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/utils"
)

func TestNewPageState(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{name: "positive size kept", size: 10, expected: 10},
		{name: "zero falls back to default", size: 0, expected: utils.DefaultPageSize},
		{name: "negative falls back to default", size: -3, expected: utils.DefaultPageSize},
		{name: "oversized clamped to max", size: 10000, expected: utils.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageState(tt.size)
			assert.Equal(t, 1, p.CurrentPage)
			assert.Equal(t, tt.expected, p.PageSize)
		})
	}
}

func TestPageStateTotalPages(t *testing.T) {
	p := PageState{CurrentPage: 1, PageSize: 6}

	assert.Equal(t, 1, p.TotalPages(0), "empty result still has one page")
	assert.Equal(t, 1, p.TotalPages(6))
	assert.Equal(t, 2, p.TotalPages(7))
	assert.Equal(t, 3, p.TotalPages(13))
}

func TestPageStateClamped(t *testing.T) {
	p := PageState{CurrentPage: 5, PageSize: 6}

	clamped := p.Clamped(13)
	assert.Equal(t, 3, clamped.CurrentPage, "page beyond the last clamps to the last")

	clamped = p.Clamped(0)
	assert.Equal(t, 1, clamped.CurrentPage, "empty result clamps to page 1")

	p.CurrentPage = 0
	clamped = p.Clamped(13)
	assert.Equal(t, 1, clamped.CurrentPage)
}

func TestModalStateExclusivity(t *testing.T) {
	w := NewTableWorkspace(NewTutorFilter(), TutorSortName, 6)

	w.OpenModal(ViewingModal("t1"))
	assert.Equal(t, ModalViewing, w.Modal.Kind)
	assert.Equal(t, "t1", w.Modal.RecordID)

	// Opening another overlay replaces the previous one
	w.OpenModal(CreatingModal())
	assert.Equal(t, ModalCreating, w.Modal.Kind)
	assert.Empty(t, w.Modal.RecordID)

	w.OpenModal(DeletingModal("t2"))
	assert.Equal(t, ModalDeleting, w.Modal.Kind)
	assert.Equal(t, "t2", w.Modal.RecordID)

	w.CloseModal()
	assert.False(t, w.Modal.IsOpen())
}

func TestModalKindNeedsRecord(t *testing.T) {
	assert.True(t, ModalViewing.NeedsRecord())
	assert.True(t, ModalEditing.NeedsRecord())
	assert.True(t, ModalDeleting.NeedsRecord())
	assert.False(t, ModalCreating.NeedsRecord())
	assert.False(t, ModalClosed.NeedsRecord())

	assert.True(t, ModalCreating.Valid())
	assert.False(t, ModalKind("previewing").Valid())
}

func TestWorkspaceSearchResetsPage(t *testing.T) {
	w := NewTableWorkspace(NewTutorFilter(), TutorSortName, 6)
	w.SetPage(3)
	require.Equal(t, 3, w.Page.CurrentPage)

	w.SetSearch("ahmad")
	assert.Equal(t, 1, w.Page.CurrentPage)

	// Re-applying the identical query keeps the page
	w.SetPage(2)
	w.SetSearch("ahmad")
	assert.Equal(t, 2, w.Page.CurrentPage)
}

func TestWorkspaceFilterResetsPage(t *testing.T) {
	w := NewTableWorkspace(NewTutorFilter(), TutorSortName, 6)
	w.SetPage(4)

	filter := w.Filter
	filter.Status = TutorStatusActive
	w.SetFilter(filter)

	assert.Equal(t, 1, w.Page.CurrentPage)
	assert.Equal(t, TutorStatusActive, w.Filter.Status)
}

func TestWorkspaceSortKeepsPage(t *testing.T) {
	w := NewTableWorkspace(NewTutorFilter(), TutorSortName, 6)
	w.SetPage(2)

	w.SetSort(TutorSortRating, SortDesc)

	assert.Equal(t, 2, w.Page.CurrentPage)
	assert.Equal(t, TutorSortRating, w.SortKey)
	assert.Equal(t, SortDesc, w.SortDir)
}

func TestSelectionSetToggleOne(t *testing.T) {
	s := NewSelectionSet()

	s.ToggleOne("a")
	assert.True(t, s.Contains("a"))

	s.ToggleOne("a")
	assert.False(t, s.Contains("a"))
	assert.Zero(t, s.Len())
}

func TestSelectionSetToggleAllOnPage(t *testing.T) {
	s := NewSelectionSet()
	page := []string{"a", "b", "c"}

	// Nothing selected: select the whole page
	s.ToggleAllOnPage(page)
	assert.Equal(t, 3, s.Len())

	// Partial selection: complete the page instead of clearing it
	s.Remove("b")
	s.ToggleAllOnPage(page)
	assert.Equal(t, 3, s.Len())

	// Everything on the page selected: clear the page only
	s.ToggleOne("other-page-id")
	s.ToggleAllOnPage(page)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("other-page-id"), "selections on other pages survive")
}

func TestSelectionSetIDsDeterministic(t *testing.T) {
	s := NewSelectionSet()
	s.ToggleOne("c")
	s.ToggleOne("a")
	s.ToggleOne("b")

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestNormalizeFilterValue(t *testing.T) {
	assert.Equal(t, FilterAll, NormalizeFilterValue(""))
	assert.Equal(t, "Active", NormalizeFilterValue("Active"))
	assert.Equal(t, FilterAll, NormalizeFilterValue(FilterAll))
}

func TestTutorFilterMatches(t *testing.T) {
	tutor := Tutor{
		Name:     "Ahmad Hassan",
		Gender:   GenderMale,
		Status:   TutorStatusActive,
		Subjects: []string{SubjectTajweed, SubjectHifz},
	}

	tests := []struct {
		name     string
		filter   TutorFilter
		expected bool
	}{
		{name: "default filter matches everything", filter: NewTutorFilter(), expected: true},
		{name: "matching status", filter: TutorFilter{Status: TutorStatusActive}, expected: true},
		{name: "mismatched status", filter: TutorFilter{Status: TutorStatusOnLeave}, expected: false},
		{name: "subject contained in list", filter: TutorFilter{Subject: SubjectHifz}, expected: true},
		{name: "subject not taught", filter: TutorFilter{Subject: SubjectTafsir}, expected: false},
		{name: "conjunction of keys", filter: TutorFilter{Status: TutorStatusActive, Gender: GenderFemale}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tutor))
		})
	}
}

func TestTutorMatchesQuery(t *testing.T) {
	tutor := Tutor{Name: "Ahmad Hassan", Email: "ahmad@academy.example", Subjects: []string{SubjectTajweed}}

	assert.True(t, tutor.MatchesQuery(""))
	assert.True(t, tutor.MatchesQuery("AHMAD"), "search is case-insensitive")
	assert.True(t, tutor.MatchesQuery("academy.example"))
	assert.True(t, tutor.MatchesQuery("tajweed"))
	assert.False(t, tutor.MatchesQuery("zaynab"))
}

func TestSortKeyValidity(t *testing.T) {
	assert.True(t, TutorSortRating.Valid())
	assert.False(t, TutorSortKey("hourly_rate").Valid())
	assert.True(t, CourseSortPrice.Valid())
	assert.False(t, CourseSortKey("tutor_name").Valid())
	assert.True(t, UserSortEnrolled.Valid())
	assert.False(t, UserSortKey("country").Valid())

	assert.True(t, SortAsc.Valid())
	assert.True(t, SortDesc.Valid())
	assert.False(t, SortDirection("descending").Valid())
}

func TestUiPreferencesNormalized(t *testing.T) {
	p := UiPreferences{Theme: "neon", PageSize: -1}
	normalized := p.Normalized()

	assert.Equal(t, ThemeLight, normalized.Theme)
	assert.Equal(t, utils.DefaultPageSize, normalized.PageSize)

	p = UiPreferences{Theme: ThemeDark, PageSize: 12}
	assert.Equal(t, p, p.Normalized())
}
