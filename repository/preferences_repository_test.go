package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/models"
)

func TestInMemoryPreferencesRoundTrip(t *testing.T) {
	store := NewInMemoryPreferencesStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "admin", models.UiPreferences{
		Theme:    models.ThemeDark,
		PageSize: 12,
	}))

	got, err := store.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got.Theme)
	assert.Equal(t, 12, got.PageSize)
}

func TestInMemoryPreferencesDefaultsWhenEmpty(t *testing.T) {
	store := NewInMemoryPreferencesStore()

	got, err := store.Get(context.Background(), "admin")

	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), got)
}

func TestInMemoryPreferencesNormalizesOnSave(t *testing.T) {
	store := NewInMemoryPreferencesStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "admin", models.UiPreferences{
		Theme:    "neon",
		PageSize: -5,
	}))

	got, err := store.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, got.Theme)
	assert.Equal(t, models.DefaultPreferences().PageSize, got.PageSize)
}

func TestInMemoryPreferencesConcurrentAccess(t *testing.T) {
	store := NewInMemoryPreferencesStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "admin", models.UiPreferences{Theme: models.ThemeDark, PageSize: 12})
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "admin")
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got.Theme)
}
