package models

import (
	"sort"
)

// SelectionSet tracks which rows are checked. Select-all is scoped to the
// ids visible on the current page, never the full filtered set.
type SelectionSet map[string]struct{}

func NewSelectionSet() SelectionSet {
	return make(SelectionSet)
}

// ToggleOne flips membership of a single id.
func (s SelectionSet) ToggleOne(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// ToggleAllOnPage removes every page id when all of them are already
// selected, otherwise adds them all. Selections outside the page are left
// untouched either way.
func (s SelectionSet) ToggleAllOnPage(pageIDs []string) {
	all := len(pageIDs) > 0
	for _, id := range pageIDs {
		if _, ok := s[id]; !ok {
			all = false
			break
		}
	}
	for _, id := range pageIDs {
		if all {
			delete(s, id)
		} else {
			s[id] = struct{}{}
		}
	}
}

// Contains reports membership of an id.
func (s SelectionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Remove drops an id, typically after the record was deleted.
func (s SelectionSet) Remove(id string) {
	delete(s, id)
}

// Clear empties the selection.
func (s SelectionSet) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// IDs returns the selected ids in deterministic order.
func (s SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s SelectionSet) Len() int { return len(s) }
