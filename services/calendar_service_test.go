package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada-backend/models"
)

func TestBuildCalendarDayLabels(t *testing.T) {
	db := newTestDB(t)
	resSvc := NewReservationService(db)
	calSvc := NewCalendarService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	_, err := resSvc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-09"), date(t, "2024-01-14"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)

	days := calendar[0].Days
	require.Len(t, days, 6)

	want := map[string]string{
		"2024-01-09": DayStatusFree,
		"2024-01-10": DayStatusCheckIn,
		"2024-01-11": DayStatusOccupied,
		"2024-01-12": DayStatusCheckOut,
		"2024-01-13": DayStatusFree,
		"2024-01-14": DayStatusFree,
	}
	for i, day := range days {
		assert.Equal(t, want[day.Date], day.Status, "day %d (%s)", i, day.Date)
	}

	// Covered days carry the reservation, free days do not.
	assert.NotNil(t, days[1].ReservationID)
	assert.Equal(t, string(StatusPending), days[1].ReservationStatus)
	assert.NotNil(t, days[1].ClientID)
	assert.Equal(t, client.ID, *days[1].ClientID)
	assert.Nil(t, days[0].ReservationID)
	assert.Nil(t, days[4].ReservationID)
}

func TestBuildCalendarWindowCompleteness(t *testing.T) {
	db := newTestDB(t)
	calSvc := NewCalendarService(db)

	seedRoom(t, db, "101", "100")

	calendar, err := calSvc.BuildCalendar(date(t, "2024-02-01"), date(t, "2024-02-29"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)

	days := calendar[0].Days
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].Date)
	assert.Equal(t, "2024-02-29", days[28].Date)
	for _, day := range days {
		assert.Equal(t, DayStatusFree, day.Status)
	}
	assert.Equal(t, "2024-02-01", calendar[0].PeriodStart)
	assert.Equal(t, "2024-02-29", calendar[0].PeriodEnd)
}

func TestBuildCalendarSingleDayWindow(t *testing.T) {
	db := newTestDB(t)
	calSvc := NewCalendarService(db)

	seedRoom(t, db, "101", "100")

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-10"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)
	require.Len(t, calendar[0].Days, 1)
	assert.Equal(t, "2024-01-10", calendar[0].Days[0].Date)
}

func TestBuildCalendarInvalidRange(t *testing.T) {
	db := newTestDB(t)
	calSvc := NewCalendarService(db)

	_, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-09"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestBuildCalendarIgnoresCancelled(t *testing.T) {
	db := newTestDB(t)
	resSvc := NewReservationService(db)
	calSvc := NewCalendarService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := resSvc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)
	_, err = resSvc.Cancel(res.ID)
	require.NoError(t, err)

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-12"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)
	for _, day := range calendar[0].Days {
		assert.Equal(t, DayStatusFree, day.Status)
		assert.Nil(t, day.ReservationID)
	}
}

func TestBuildCalendarStaffOccupiedOverride(t *testing.T) {
	db := newTestDB(t)
	resSvc := NewReservationService(db)
	calSvc := NewCalendarService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	_, err := resSvc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-11"),
		CheckOut: date(t, "2024-01-12"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Room{}).
		Where("id = ?", room.ID).
		Update("status", models.RoomStatusOccupied).Error)

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-12"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)

	days := calendar[0].Days
	require.Len(t, days, 3)
	// Days without a reservation show ocupado because of the room flag, but
	// reservation labels still win on covered days.
	assert.Equal(t, DayStatusOccupied, days[0].Status)
	assert.Nil(t, days[0].ReservationID)
	assert.Equal(t, DayStatusCheckIn, days[1].Status)
	assert.Equal(t, DayStatusOccupied, days[2].Status)
	assert.Nil(t, days[2].ReservationID)
}

func TestBuildCalendarRoomsOrderedByNumber(t *testing.T) {
	db := newTestDB(t)
	calSvc := NewCalendarService(db)

	seedRoom(t, db, "203", "100")
	seedRoom(t, db, "101", "100")
	seedRoom(t, db, "102", "100")

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-10"))
	require.NoError(t, err)
	require.Len(t, calendar, 3)
	assert.Equal(t, "101", calendar[0].Number)
	assert.Equal(t, "102", calendar[1].Number)
	assert.Equal(t, "203", calendar[2].Number)
}

func TestBuildCalendarClipsReservationToWindow(t *testing.T) {
	db := newTestDB(t)
	resSvc := NewReservationService(db)
	calSvc := NewCalendarService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	// Stay straddles the window on both sides.
	_, err := resSvc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-05"),
		CheckOut: date(t, "2024-01-20"),
	})
	require.NoError(t, err)

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-12"))
	require.NoError(t, err)
	require.Len(t, calendar, 1)

	for _, day := range calendar[0].Days {
		assert.Equal(t, DayStatusOccupied, day.Status, day.Date)
		assert.NotNil(t, day.ReservationID)
	}
}

func TestBuildCalendarNoRooms(t *testing.T) {
	db := newTestDB(t)
	calSvc := NewCalendarService(db)

	calendar, err := calSvc.BuildCalendar(date(t, "2024-01-10"), date(t, "2024-01-12"))
	require.NoError(t, err)
	assert.Empty(t, calendar)
}
