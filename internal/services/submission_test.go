package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jared-cannon/app-registry/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistPathway_Accept(t *testing.T) {
	store, _ := setupTestStore(t)
	notifier := &recordingNotifier{}
	pathway := NewPersistPathway(store, notifier, "/apps")

	existing := validApp()
	existing.Name = "Existing"
	require.NoError(t, store.SaveAll(models.AppList{existing}))

	outcome, err := pathway.Submit(validApp())
	require.NoError(t, err)

	assert.True(t, outcome.Accepted)
	assert.Empty(t, outcome.FieldErrors)
	assert.Equal(t, "/apps", outcome.Redirect)
	assert.Zero(t, outcome.RedirectDelay)

	list := store.LoadAll()
	require.Len(t, list, 2)
	assert.Equal(t, validApp(), list[0])
	assert.Equal(t, existing, list[1])

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, AppsChannel, events[0].Channel)
	assert.Equal(t, EventAppCreated, events[0].Event)
}

func TestPersistPathway_RejectNameWithSpace(t *testing.T) {
	store, _ := setupTestStore(t)
	notifier := &recordingNotifier{}
	pathway := NewPersistPathway(store, notifier, "/apps")

	app := validApp()
	app.Name = "My App"

	outcome, err := pathway.Submit(app)
	require.NoError(t, err)

	assert.False(t, outcome.Accepted)
	assert.Equal(t, FieldErrors{"name": MsgName}, outcome.FieldErrors)
	assert.Empty(t, outcome.Redirect)
	assert.Empty(t, store.LoadAll(), "rejected submission must not be stored")
	assert.Empty(t, notifier.Events())
}

func TestPersistPathway_NilNotifier(t *testing.T) {
	store, _ := setupTestStore(t)
	pathway := NewPersistPathway(store, nil, "/done")

	outcome, err := pathway.Submit(validApp())
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, "/done", outcome.Redirect)
}

func TestPersistPathway_StorageFailure(t *testing.T) {
	_, kv := setupTestStore(t)
	store := NewRecordStore(&failingKV{KeyValueStore: kv, err: errors.New("read-only")}, testSlot)
	notifier := &recordingNotifier{}
	pathway := NewPersistPathway(store, notifier, "/apps")

	outcome, err := pathway.Submit(validApp())
	assert.Nil(t, outcome)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrCodeStorageFailed, apiErr.Code)
	assert.Empty(t, notifier.Events())
}

func TestQuickPathway(t *testing.T) {
	pathway := NewQuickPathway("/apps", 2000*time.Millisecond)
	assert.Equal(t, ModeValidateAndDelayedRedirect, pathway.Mode())

	t.Run("Accept shows success and delays redirect", func(t *testing.T) {
		outcome, err := pathway.Submit(validApp())
		require.NoError(t, err)
		assert.True(t, outcome.Accepted)
		assert.Equal(t, LegacyMsgSuccess, outcome.Status)
		assert.Equal(t, "/apps", outcome.Redirect)
		assert.Equal(t, 2*time.Second, outcome.RedirectDelay)
		assert.Empty(t, outcome.FieldErrors)
	})

	t.Run("Reject shows one status message", func(t *testing.T) {
		app := validApp()
		app.Name = "My App"
		app.Summary = "short"

		outcome, err := pathway.Submit(app)
		require.NoError(t, err)
		assert.False(t, outcome.Accepted)
		assert.Equal(t, LegacyMsgName, outcome.Status)
		assert.Empty(t, outcome.Redirect)
		assert.Empty(t, outcome.FieldErrors)
	})
}

func TestPathways_DoNotShareStorage(t *testing.T) {
	store, _ := setupTestStore(t)
	quick := NewQuickPathway("/apps", time.Second)

	outcome, err := quick.Submit(validApp())
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Empty(t, store.LoadAll(), "quick form never stores records")
}

func TestPathwayMode_String(t *testing.T) {
	assert.Equal(t, "persist", ModePersistAndRedirect.String())
	assert.Equal(t, "quick", ModeValidateAndDelayedRedirect.String())
	assert.Equal(t, "unknown", PathwayMode(42).String())
}
