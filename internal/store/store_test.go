package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lox/koppen/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := New(db, zap.NewNop().Sugar())
	require.NoError(t, store.Migrate())
	return store
}

func testLocation(name string) models.Location {
	return models.Location{
		Name:      name,
		Southern:  true,
		Precip:    []float64{30, 40, 20, 60, 80, 100, 150, 140, 90, 70, 50, 40},
		Temp:      []float64{10, 12, 15, 18, 20, 25, 30, 28, 22, 15, 12, 8},
		Code:      "Csa",
		Threshold: 358.33,
		TempMean:  17.92,
		PrecipSum: 870,
	}
}

func TestSaveAndGetLocation(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SaveLocation(testLocation("Adelaide")))

	got, err := store.GetLocation("Adelaide")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Adelaide", got.Name)
	assert.Equal(t, "Csa", got.Code)
	assert.True(t, got.Southern)
	assert.Equal(t, testLocation("Adelaide").Precip, got.Precip)
	assert.Equal(t, testLocation("Adelaide").Temp, got.Temp)
	assert.InDelta(t, 358.33, got.Threshold, 1e-9)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetLocationMissing(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.GetLocation("nowhere")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveLocationUpsert(t *testing.T) {
	store := setupTestStore(t)

	loc := testLocation("Perth")
	require.NoError(t, store.SaveLocation(loc))

	loc.Code = "BSk"
	loc.Threshold = 420
	require.NoError(t, store.SaveLocation(loc))

	got, err := store.GetLocation("Perth")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "BSk", got.Code)
	assert.InDelta(t, 420.0, got.Threshold, 1e-9)

	all, err := store.ListLocations()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListLocations(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SaveLocation(testLocation("Melbourne")))
	require.NoError(t, store.SaveLocation(testLocation("Adelaide")))

	all, err := store.ListLocations()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Adelaide", all[0].Name, "list is ordered by name")
	assert.Equal(t, "Melbourne", all[1].Name)
}

func TestListLocationsByCode(t *testing.T) {
	store := setupTestStore(t)

	csa := testLocation("Adelaide")
	bwh := testLocation("Alice Springs")
	bwh.Code = "BWh"
	require.NoError(t, store.SaveLocation(csa))
	require.NoError(t, store.SaveLocation(bwh))

	deserts, err := store.ListLocationsByCode("BWh")
	require.NoError(t, err)
	require.Len(t, deserts, 1)
	assert.Equal(t, "Alice Springs", deserts[0].Name)
}

func TestDeleteLocation(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SaveLocation(testLocation("Hobart")))

	deleted, err := store.DeleteLocation("Hobart")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteLocation("Hobart")
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := store.GetLocation("Hobart")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMigrateIdempotent(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Migrate())
}
