package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

func TestBindingStoreSaveGetDelete(t *testing.T) {
	store := NewBindingStore()
	ctx := context.Background()

	binding := domain.ProjectBinding{
		ProjectID:   "proj-1",
		ProviderID:  domain.ProviderGoogleAnalytics,
		Field:       "gaPropertyId",
		Value:       "GA-100",
		CommittedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, binding))

	got, err := store.Get(ctx, "proj-1", domain.ProviderGoogleAnalytics)
	require.NoError(t, err)
	assert.Equal(t, "GA-100", got.Value)

	// Save replaces.
	binding.Value = "GA-200"
	require.NoError(t, store.Save(ctx, binding))
	got, err = store.Get(ctx, "proj-1", domain.ProviderGoogleAnalytics)
	require.NoError(t, err)
	assert.Equal(t, "GA-200", got.Value)

	require.NoError(t, store.Delete(ctx, "proj-1", domain.ProviderGoogleAnalytics))
	_, err = store.Get(ctx, "proj-1", domain.ProviderGoogleAnalytics)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBindingStoreListScopedToProject(t *testing.T) {
	store := NewBindingStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.ProjectBinding{
		ProjectID: "proj-1", ProviderID: domain.ProviderGoogleAnalytics, Field: "gaPropertyId", Value: "GA-100",
	}))
	require.NoError(t, store.Save(ctx, domain.ProjectBinding{
		ProjectID: "proj-1", ProviderID: domain.ProviderMailchimp, Field: "mailchimpAudienceId", Value: "aud-1",
	}))
	require.NoError(t, store.Save(ctx, domain.ProjectBinding{
		ProjectID: "proj-2", ProviderID: domain.ProviderGoogleAnalytics, Field: "gaPropertyId", Value: "GA-900",
	}))

	list, err := store.List(ctx, "proj-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := store.List(ctx, "proj-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEventStoreNewestFirst(t *testing.T) {
	store := NewEventStore()
	ctx := context.Background()

	base := time.Now()
	for i, outcome := range []string{"authorized", "bound", "cancelled"} {
		require.NoError(t, store.Record(ctx, domain.ConnectionEvent{
			ID:         outcome,
			ProjectID:  "proj-1",
			ProviderID: domain.ProviderGoogleAnalytics,
			Outcome:    outcome,
			At:         base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.Record(ctx, domain.ConnectionEvent{
		ID: "other", ProjectID: "proj-2", Outcome: "bound", At: base,
	}))

	events, err := store.ListByProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "cancelled", events[0].Outcome)
	assert.Equal(t, "bound", events[1].Outcome)
	assert.Equal(t, "authorized", events[2].Outcome)
}
