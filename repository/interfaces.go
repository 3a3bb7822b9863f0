package repository

import (
	"context"

	"github.com/alfurqan/academy-admin/models"
)

// EntityStore is the store contract shared by every entity kind: lifecycle
// management plus the local patch operations applied after successful
// backend mutations.
type EntityStore[T Record] interface {
	State() CollectionState
	LoadError() error
	Ready() bool
	BeginLoad()
	CompleteLoad(items []T)
	FailLoad(err error)
	Snapshot() []T
	Len() int
	ByID(id string) (T, bool)
	Prepend(record T)
	Replace(record T) bool
	Remove(id string) bool
}

// TutorStore holds the canonical tutor collection.
type TutorStore interface {
	EntityStore[models.Tutor]
}

// CourseStore holds the canonical course collection.
type CourseStore interface {
	EntityStore[models.Course]
}

// UserStore holds the canonical user collection.
type UserStore interface {
	EntityStore[models.User]
}

// PreferencesStore persists admin UI preferences as an explicit settings
// service: read once per fetch with defaults on miss, written through on
// every change.
type PreferencesStore interface {
	Get(ctx context.Context, owner string) (models.UiPreferences, error)
	Save(ctx context.Context, owner string, prefs models.UiPreferences) error
}
