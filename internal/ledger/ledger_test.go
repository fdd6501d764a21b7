package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parking-lot-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.VehicleRecord{}))
	return db
}

func TestRegister_RecordCountFollowsSize(t *testing.T) {
	db := newTestDB(t)

	cases := []struct {
		size model.VehicleSize
		want int
	}{
		{model.SizeSmall, 1},
		{model.SizeMedium, 2},
		{model.SizeLarge, 3},
	}
	for _, tc := range cases {
		plate := "PLATE-" + string(tc.size)
		records, err := Register(db, plate, tc.size)
		require.NoError(t, err)
		assert.Len(t, records, tc.want)
		for _, r := range records {
			assert.Equal(t, model.StatusUnset, r.Status)
			assert.Nil(t, r.SlotNumber)
		}
	}
}

func TestRegister_PlateIsOneTimeClaim(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "AB-1", model.SizeSmall)
	require.NoError(t, err)

	_, err = Register(db, "AB-1", model.SizeLarge)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// Even a fully departed vehicle keeps its claim on the plate.
	_, err = AssignSlot(db, "AB-1", 1)
	require.NoError(t, err)
	_, err = ReleaseSlot(db, "AB-1", 1)
	require.NoError(t, err)

	_, err = Register(db, "AB-1", model.SizeSmall)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestAssignSlot(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "MD-1", model.SizeMedium)
	require.NoError(t, err)

	first, err := AssignSlot(db, "MD-1", 5)
	require.NoError(t, err)
	require.NotNil(t, first.SlotNumber)
	assert.Equal(t, 5, *first.SlotNumber)
	assert.Equal(t, model.StatusParked, first.Status)

	// The second record binds independently, contiguity is not required.
	second, err := AssignSlot(db, "MD-1", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, *second.SlotNumber)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = AssignSlot(db, "MD-1", 11)
	assert.ErrorIs(t, err, ErrNoFreeRecord)
}

func TestReleaseSlot(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "SM-1", model.SizeSmall)
	require.NoError(t, err)

	_, err = ReleaseSlot(db, "SM-1", 3)
	assert.ErrorIs(t, err, ErrNotParked)

	_, err = AssignSlot(db, "SM-1", 3)
	require.NoError(t, err)

	record, err := ReleaseSlot(db, "SM-1", 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLeft, record.Status)
	// The slot number stays on the record for history.
	require.NotNil(t, record.SlotNumber)
	assert.Equal(t, 3, *record.SlotNumber)

	// Releasing again reports the same error as never having parked.
	_, err = ReleaseSlot(db, "SM-1", 3)
	assert.ErrorIs(t, err, ErrNotParked)
}

func TestRecordsFor(t *testing.T) {
	db := newTestDB(t)

	created, err := Register(db, "LG-1", model.SizeLarge)
	require.NoError(t, err)

	records, err := RecordsFor(db, "LG-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, created[i].ID, r.ID)
	}

	records, err = RecordsFor(db, "UNKNOWN")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBySize(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "MD-1", model.SizeMedium)
	require.NoError(t, err)
	_, err = Register(db, "MD-2", model.SizeMedium)
	require.NoError(t, err)
	_, err = Register(db, "SM-1", model.SizeSmall)
	require.NoError(t, err)

	// MD-1 parks both records, MD-2 parks one, SM-1 stays unparked.
	_, err = AssignSlot(db, "MD-1", 1)
	require.NoError(t, err)
	_, err = AssignSlot(db, "MD-1", 2)
	require.NoError(t, err)
	_, err = AssignSlot(db, "MD-2", 4)
	require.NoError(t, err)

	records, err := BySize(db, model.SizeMedium)
	require.NoError(t, err)
	require.Len(t, records, 2)
	plates := []string{records[0].Plate, records[1].Plate}
	assert.ElementsMatch(t, []string{"MD-1", "MD-2"}, plates)

	records, err = BySize(db, model.SizeSmall)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParkedSlots(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "MD-1", model.SizeMedium)
	require.NoError(t, err)
	_, err = AssignSlot(db, "MD-1", 7)
	require.NoError(t, err)
	_, err = AssignSlot(db, "MD-1", 2)
	require.NoError(t, err)

	slots, err := ParkedSlots(db, model.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7}, slots)

	// Departed records drop out of the listing.
	_, err = ReleaseSlot(db, "MD-1", 7)
	require.NoError(t, err)

	slots, err = ParkedSlots(db, model.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, slots)
}
