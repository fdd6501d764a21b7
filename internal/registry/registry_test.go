package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parking-lot-backend/internal/model"
)

// newTestDB opens an isolated in-memory SQLite database with the schema
// migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Slot{}))
	return db
}

func numbers(slots []model.Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.Number
	}
	return out
}

func TestInitialize(t *testing.T) {
	db := newTestDB(t)

	slots, err := Initialize(db, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, numbers(slots))
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.True(t, s.Active)
	}

	// Re-initializing replaces the previous set entirely.
	slots, err = Initialize(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, numbers(slots))

	all, err := Snapshot(db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, numbers(all))
}

func TestHasOccupied(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 2)
	require.NoError(t, err)

	occupied, err := HasOccupied(db)
	require.NoError(t, err)
	assert.False(t, occupied)

	require.NoError(t, Occupy(db, 1))

	occupied, err = HasOccupied(db)
	require.NoError(t, err)
	assert.True(t, occupied)
}

func TestAddSlots_NumbersNeverReused(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 3)
	require.NoError(t, err)

	// Deactivating the highest slot must not free its number.
	require.NoError(t, Remove(db, 3))

	slots, err := AddSlots(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, numbers(slots))

	// Active snapshot skips the deactivated slot.
	active, err := Snapshot(db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5}, numbers(active))
}

func TestAddSlots_EmptyRegistryStartsAtOne(t *testing.T) {
	db := newTestDB(t)

	slots, err := AddSlots(db, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, numbers(slots))
}

func TestRemove(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, Remove(db, 99), ErrSlotNotFound)

	require.NoError(t, Occupy(db, 1))
	assert.ErrorIs(t, Remove(db, 1), ErrOccupied)

	require.NoError(t, Remove(db, 2))
	assert.ErrorIs(t, Remove(db, 2), ErrAlreadyInactive)

	slot, err := Get(db, 2)
	require.NoError(t, err)
	assert.False(t, slot.Active)
	assert.True(t, slot.Available)
}

func TestOccupyRelease(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, Occupy(db, 42), ErrSlotNotFound)
	assert.ErrorIs(t, Release(db, 42), ErrSlotNotFound)

	require.NoError(t, Occupy(db, 1))
	slot, err := Get(db, 1)
	require.NoError(t, err)
	assert.False(t, slot.Available)

	require.NoError(t, Release(db, 1))
	slot, err = Get(db, 1)
	require.NoError(t, err)
	assert.True(t, slot.Available)
}

func TestFindFreeRun(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 6)
	require.NoError(t, err)

	// Occupy slot 3 so the free set is [1,2,4,5,6].
	require.NoError(t, Occupy(db, 3))

	run, err := FindFreeRun(db, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, run)

	run, err = FindFreeRun(db, 4)
	require.NoError(t, err)
	assert.Nil(t, run)

	run, err = FindFreeRun(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, run)
}

func TestFindFreeRun_InactiveSlotBreaksRun(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 5)
	require.NoError(t, err)

	// Soft-deleting slot 3 leaves a numbering gap the run cannot cross.
	require.NoError(t, Remove(db, 3))

	run, err := FindFreeRun(db, 3)
	require.NoError(t, err)
	assert.Nil(t, run)

	run, err = FindFreeRun(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, run)
}

func TestAvailableSnapshot(t *testing.T) {
	db := newTestDB(t)

	_, err := Initialize(db, 4)
	require.NoError(t, err)
	require.NoError(t, Occupy(db, 2))
	require.NoError(t, Remove(db, 4))

	free, err := AvailableSnapshot(db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, numbers(free))
}
