package httpapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStoreStartsWithDefaults(t *testing.T) {
	store := NewSettingsStore()
	assert.Equal(t, DefaultAppSettings(), store.Get())
}

func TestSettingsStoreUpdateReplacesValue(t *testing.T) {
	store := NewSettingsStore()
	next := AppSettings{DefaultLevel: 5, DefaultAIStrategy: "aggressive", SessionTimeoutMinutes: 60}
	updated, err := store.Update(next)
	require.NoError(t, err)
	assert.Equal(t, next, updated)
	assert.Equal(t, next, store.Get())
}

func TestSettingsStoreUpdateRejectsInvalidLevel(t *testing.T) {
	store := NewSettingsStore()
	_, err := store.Update(AppSettings{DefaultLevel: 99, DefaultAIStrategy: "x", SessionTimeoutMinutes: 1})
	assert.ErrorIs(t, err, errBadRequest)
	assert.Equal(t, DefaultAppSettings(), store.Get())
}

func TestSettingsStoreUpdateFieldPatchesOneField(t *testing.T) {
	store := NewSettingsStore()
	updated, err := store.UpdateField("default_level", json.RawMessage(`3`))
	require.NoError(t, err)
	assert.Equal(t, uint8(3), updated.DefaultLevel)
	assert.Equal(t, DefaultAppSettings().DefaultAIStrategy, updated.DefaultAIStrategy)
}

func TestSettingsStoreUpdateFieldRejectsUnknownField(t *testing.T) {
	store := NewSettingsStore()
	_, err := store.UpdateField("nonexistent", json.RawMessage(`1`))
	assert.ErrorIs(t, err, errBadRequest)
}

func TestSettingsStoreResetRestoresDefaults(t *testing.T) {
	store := NewSettingsStore()
	_, err := store.Update(AppSettings{DefaultLevel: 7, DefaultAIStrategy: "x", SessionTimeoutMinutes: 5})
	require.NoError(t, err)
	assert.Equal(t, DefaultAppSettings(), store.Reset())
}
