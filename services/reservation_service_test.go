package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pousada-backend/models"
)

func TestCreateReservationComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100.00")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(StatusPending), res.Status)
	assert.True(t, res.TotalValue.Equal(decimal.RequireFromString("300.00")),
		"want 300.00, got %s", res.TotalValue)
	assert.NotEmpty(t, res.Code)
}

func TestCreateReservationInvalidRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	for _, checkOut := range []string{"2024-01-10", "2024-01-09"} {
		_, err := svc.Create(CreateReservationInput{
			RoomID:   room.ID,
			ClientID: client.ID,
			CheckIn:  date(t, "2024-01-10"),
			CheckOut: date(t, checkOut),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	}
}

func TestCreateReservationRoomNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	_, err := svc.Create(CreateReservationInput{
		RoomID:   9999,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-12"),
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

// The scenario from the booking rules: overlapping reservation is refused,
// cancelling the blocker frees the range.
func TestCreateReservationConflictAndRetryAfterCancel(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100.00")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	a, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)
	assert.True(t, a.TotalValue.Equal(decimal.RequireFromString("300")))

	// B overlaps A on Jan 12.
	b := CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-12"),
		CheckOut: date(t, "2024-01-15"),
	}
	_, err = svc.Create(b)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	cancelled, err := svc.Cancel(a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), cancelled.Status)

	created, err := svc.Create(b)
	require.NoError(t, err)
	assert.True(t, created.TotalValue.Equal(decimal.RequireFromString("300")))
}

func TestAvailabilityHalfOpenBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	_, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	// Back-to-back: check-in on the other stay's checkout day is fine.
	_, err = svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-13"),
		CheckOut: date(t, "2024-01-15"),
	})
	assert.NoError(t, err)

	// Ending on the other stay's check-in day is fine too.
	_, err = svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-08"),
		CheckOut: date(t, "2024-01-10"),
	})
	assert.NoError(t, err)

	// Any shared day conflicts.
	_, err = svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-09"),
		CheckOut: date(t, "2024-01-11"),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestAvailabilityIgnoresCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	free, err := svc.IsRoomAvailable(room.ID, date(t, "2024-01-11"), date(t, "2024-01-12"), 0)
	require.NoError(t, err)
	assert.False(t, free)

	_, err = svc.Cancel(res.ID)
	require.NoError(t, err)

	free, err = svc.IsRoomAvailable(room.ID, date(t, "2024-01-11"), date(t, "2024-01-12"), 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestLifecycleTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	// Check-out before check-in is refused.
	_, err = svc.CheckOut(res.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	active, err := svc.CheckIn(res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusActive), active.Status)

	// Double check-in is refused.
	_, err = svc.CheckIn(res.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	done, err := svc.CheckOut(res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCompleted), done.Status)

	// Completed reservations cannot be cancelled.
	_, err = svc.Cancel(res.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancelIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	first, err := svc.Cancel(res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), first.Status)

	// Repeating the cancel is a no-op success.
	second, err := svc.Cancel(res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), second.Status)
}

func TestCancelKeepsRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(res.ID)
	require.NoError(t, err)

	// Still retrievable, with its original money and dates.
	kept, err := svc.GetByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), kept.Status)
	assert.True(t, kept.TotalValue.Equal(res.TotalValue))

	var total int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestUpdateReservationDatesReprice(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	roomSvc := NewRoomService(db)

	room := seedRoom(t, db, "101", "100.00")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	// Rate changes after creation; the stored total is untouched...
	newRate := decimal.RequireFromString("120.00")
	_, err = roomSvc.Update(room.ID, RoomPatch{DailyRate: &newRate})
	require.NoError(t, err)

	same, err := svc.GetByID(res.ID)
	require.NoError(t, err)
	assert.True(t, same.TotalValue.Equal(decimal.RequireFromString("300.00")))

	// ...until a date change reprices at the current rate.
	newOut := date(t, "2024-01-15")
	updated, err := svc.Update(res.ID, UpdateReservationInput{CheckOut: &newOut})
	require.NoError(t, err)
	assert.True(t, updated.TotalValue.Equal(decimal.RequireFromString("600.00")),
		"5 nights at 120.00, got %s", updated.TotalValue)
}

func TestUpdateReservationExcludesOwnRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	// Shifting inside its own current range must not see itself as a conflict.
	newIn := date(t, "2024-01-11")
	newOut := date(t, "2024-01-14")
	updated, err := svc.Update(res.ID, UpdateReservationInput{CheckIn: &newIn, CheckOut: &newOut})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-11", updated.CheckIn.Format("2006-01-02"))
	assert.Equal(t, "2024-01-14", updated.CheckOut.Format("2006-01-02"))
}

func TestUpdateReservationConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	_, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	other, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-20"),
		CheckOut: date(t, "2024-01-22"),
	})
	require.NoError(t, err)

	newIn := date(t, "2024-01-11")
	newOut := date(t, "2024-01-14")
	_, err = svc.Update(other.ID, UpdateReservationInput{CheckIn: &newIn, CheckOut: &newOut})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestUpdateReservationStatusSynonym(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	res, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	// "em_andamento" is an accepted synonym of ativa; the canonical value is
	// what gets persisted.
	synonym := "em_andamento"
	updated, err := svc.Update(res.ID, UpdateReservationInput{Status: &synonym})
	require.NoError(t, err)
	assert.Equal(t, string(StatusActive), updated.Status)

	bogus := "whatever"
	_, err = svc.Update(res.ID, UpdateReservationInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListReservationsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	room := seedRoom(t, db, "101", "100")
	other := seedRoom(t, db, "102", "100")
	client := seedClient(t, db, "Ana", "ana@example.com", "111.111.111-11")

	jan, err := svc.Create(CreateReservationInput{
		RoomID:   room.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-01-10"),
		CheckOut: date(t, "2024-01-13"),
	})
	require.NoError(t, err)

	feb, err := svc.Create(CreateReservationInput{
		RoomID:   other.ID,
		ClientID: client.ID,
		CheckIn:  date(t, "2024-02-05"),
		CheckOut: date(t, "2024-02-08"),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(feb.ID)
	require.NoError(t, err)

	all, err := svc.List(ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest check-in first.
	assert.Equal(t, feb.ID, all[0].ID)
	assert.Equal(t, jan.ID, all[1].ID)

	// Month filter.
	january, err := svc.List(ReservationFilter{Month: "2024-01"})
	require.NoError(t, err)
	require.Len(t, january, 1)
	assert.Equal(t, jan.ID, january[0].ID)

	_, err = svc.List(ReservationFilter{Month: "2024/01"})
	assert.ErrorIs(t, err, ErrInvalidMonthFilter)

	// Status filter accepts synonyms.
	cancelled, err := svc.List(ReservationFilter{Status: "cancelado"})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, feb.ID, cancelled[0].ID)

	pending, err := svc.List(ReservationFilter{Status: "confirmado"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, jan.ID, pending[0].ID)

	// Unknown status values are rejected, like malformed mes values.
	_, err = svc.List(ReservationFilter{Status: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	_, err := svc.CheckIn(9999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	_, err = svc.Cancel(9999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestPriceDecimalExact(t *testing.T) {
	rate := decimal.RequireFromString("99.99")
	total := Price(rate, date(t, "2024-03-01"), date(t, "2024-03-31"))
	assert.True(t, total.Equal(decimal.RequireFromString("2999.70")), "got %s", total)

	oneNight := Price(decimal.RequireFromString("0.10"), date(t, "2024-03-01"), date(t, "2024-03-02"))
	assert.True(t, oneNight.Equal(decimal.RequireFromString("0.10")))
}
