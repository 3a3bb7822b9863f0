package models

import (
	"time"

	"github.com/alfurqan/academy-admin/utils"
)

// FilterAll is the sentinel filter value meaning "no constraint on this
// field". A filter with every key at FilterAll and an empty search string
// matches the entire collection.
const FilterAll = "All"

// NormalizeFilterValue maps the empty string to FilterAll so zero-valued
// filters behave like defaults.
func NormalizeFilterValue(v string) string {
	if v == "" {
		return FilterAll
	}
	return v
}

// SortDirection orders a sorted view ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// PageState tracks the current page of a table view. CurrentPage is always
// clamped to [1, max(1, ceil(total/PageSize))] when the underlying result
// set changes.
type PageState struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// NewPageState returns page 1 with the given size, falling back to the
// default size for non-positive values.
func NewPageState(size int) PageState {
	if size <= 0 {
		size = utils.DefaultPageSize
	}
	if size > utils.MaxPageSize {
		size = utils.MaxPageSize
	}
	return PageState{CurrentPage: 1, PageSize: size}
}

// TotalPages computes max(1, ceil(total/PageSize)).
func (p PageState) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 1
	}
	pages := (total + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamped returns the state with CurrentPage silently clamped for the given
// result length.
func (p PageState) Clamped(total int) PageState {
	max := p.TotalPages(total)
	if p.CurrentPage > max {
		p.CurrentPage = max
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

// ModalKind identifies which overlay is active in a table workspace.
type ModalKind string

const (
	ModalClosed   ModalKind = "closed"
	ModalViewing  ModalKind = "viewing"
	ModalEditing  ModalKind = "editing"
	ModalDeleting ModalKind = "deleting"
	ModalCreating ModalKind = "creating"
)

// ModalState is the single tagged value controlling overlays: at most one
// overlay is active at any time, by construction. RecordID is set only for
// the record-scoped kinds (viewing, editing, deleting).
type ModalState struct {
	Kind     ModalKind `json:"kind"`
	RecordID string    `json:"record_id,omitempty"`
}

func ClosedModal() ModalState   { return ModalState{Kind: ModalClosed} }
func CreatingModal() ModalState { return ModalState{Kind: ModalCreating} }

func ViewingModal(id string) ModalState  { return ModalState{Kind: ModalViewing, RecordID: id} }
func EditingModal(id string) ModalState  { return ModalState{Kind: ModalEditing, RecordID: id} }
func DeletingModal(id string) ModalState { return ModalState{Kind: ModalDeleting, RecordID: id} }

// IsOpen reports whether any overlay is active.
func (m ModalState) IsOpen() bool { return m.Kind != ModalClosed && m.Kind != "" }

// NeedsRecord reports whether the kind requires a record reference.
func (k ModalKind) NeedsRecord() bool {
	return k == ModalViewing || k == ModalEditing || k == ModalDeleting
}

func (k ModalKind) Valid() bool {
	switch k {
	case ModalClosed, ModalViewing, ModalEditing, ModalDeleting, ModalCreating:
		return true
	}
	return false
}

// TableWorkspace is the per-session state of one entity table: search text,
// field filters, sort, page, row selection and the active overlay. Opening
// any overlay replaces the previous one; changing search or filters resets
// the page to 1 so a shrunken result never shows a stale page.
type TableWorkspace[F any, K ~string] struct {
	Search    string        `json:"search"`
	Filter    F             `json:"filter"`
	SortKey   K             `json:"sort_key"`
	SortDir   SortDirection `json:"sort_dir"`
	Page      PageState     `json:"page"`
	Selection SelectionSet  `json:"-"`
	Modal     ModalState    `json:"modal"`

	TouchedAt time.Time `json:"-"`
}

// NewTableWorkspace builds a workspace with the default filter, sort and
// page size.
func NewTableWorkspace[F any, K ~string](filter F, sortKey K, pageSize int) *TableWorkspace[F, K] {
	return &TableWorkspace[F, K]{
		Filter:    filter,
		SortKey:   sortKey,
		SortDir:   SortAsc,
		Page:      NewPageState(pageSize),
		Selection: NewSelectionSet(),
		Modal:     ClosedModal(),
		TouchedAt: utils.UTCNow(),
	}
}

// Touch records activity for idle eviction.
func (w *TableWorkspace[F, K]) Touch() { w.TouchedAt = utils.UTCNow() }

// SetSearch replaces the query (trimmed by the caller) and resets the page.
func (w *TableWorkspace[F, K]) SetSearch(query string) {
	if w.Search != query {
		w.Search = query
		w.Page.CurrentPage = 1
	}
}

// SetFilter replaces the field filters and resets the page.
func (w *TableWorkspace[F, K]) SetFilter(filter F) {
	w.Filter = filter
	w.Page.CurrentPage = 1
}

// SetSort replaces the sort key and direction. Sorting does not reset the
// page; the paginator clamps if the view shrinks.
func (w *TableWorkspace[F, K]) SetSort(key K, dir SortDirection) {
	w.SortKey = key
	w.SortDir = dir
}

// SetPage moves to the requested page; the paginator clamps out-of-range
// values at derivation time.
func (w *TableWorkspace[F, K]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	w.Page.CurrentPage = page
}

// OpenModal activates an overlay, implicitly closing any other.
func (w *TableWorkspace[F, K]) OpenModal(state ModalState) {
	w.Modal = state
}

// CloseModal deactivates the current overlay.
func (w *TableWorkspace[F, K]) CloseModal() {
	w.Modal = ClosedModal()
}
