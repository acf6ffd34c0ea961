package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	status, err := ParseRoomStatus("occupied")
	require.NoError(t, err)
	assert.Equal(t, RoomStatusOccupied, status)

	gender, err := ParseGender(" Female ")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, gender)

	_, err = ParsePatientStatus("SLEEPING")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestParseBloodGroup(t *testing.T) {
	bg, err := ParseBloodGroup("AB+")
	require.NoError(t, err)
	assert.Equal(t, BloodGroupABPositive, bg)

	bg, err = ParseBloodGroup("o_negative")
	require.NoError(t, err)
	assert.Equal(t, BloodGroupONegative, bg)
	assert.Equal(t, "O-", bg.DisplayName())

	_, err = ParseBloodGroup("C+")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, []string{"ADMIN", "DOCTOR"}, EnumStrings(RoleValues))
	assert.Len(t, EnumStrings(RoomTypeValues), 10)
	assert.Len(t, EnumStrings(RoomStatusValues), 6)
}

func TestPrescriptionExpiry(t *testing.T) {
	issued := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), PrescriptionExpiry(issued, nil))

	days := 7
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), PrescriptionExpiry(issued, &days))

	zero := 0
	assert.Equal(t, time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), PrescriptionExpiry(issued, &zero))
}
