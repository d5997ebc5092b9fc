package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pousada-backend/models"
	"pousada-backend/utils"
)

// maxBookingAttempts bounds the retry loop around the booking transaction
// when MySQL aborts it with a deadlock or lock wait timeout.
const maxBookingAttempts = 3

// ReservationService drives the reservation lifecycle. The availability check
// and the write that depends on it always run inside one transaction holding
// the room row lock, so two concurrent bookings for overlapping dates cannot
// both commit.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// CreateReservationInput is what the calling layer supplies; the client id is
// trusted to have been validated by the client registry.
type CreateReservationInput struct {
	RoomID   uint
	ClientID uint
	CheckIn  time.Time
	CheckOut time.Time
}

// UpdateReservationInput is a partial update; nil fields are left untouched.
type UpdateReservationInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *string
}

// ReservationFilter narrows List. Status accepts any synonym; Month is the
// check-in month in YYYY-MM.
type ReservationFilter struct {
	Status string
	Month  string
	Offset int
	Limit  int
}

// Price computes nights × dailyRate with decimal arithmetic. Nights is the
// whole-day length of [checkIn, checkOut) and is >= 1 once the date range has
// been validated upstream.
func Price(dailyRate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := utils.Nights(checkIn, checkOut)
	return dailyRate.Mul(decimal.NewFromInt(int64(nights)))
}

// overlapCondition: two half-open ranges [a1,a2) and [b1,b2) overlap iff
// a1 < b2 AND b1 < a2, so a checkout on day X never conflicts with a
// check-in on day X.
func (s *ReservationService) isRoomAvailable(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	q := tx.Model(&models.Reservation{}).
		Where("quarto_id = ?", roomID).
		Where("status NOT IN ?", cancelledStatuses()).
		Where("data_checkin < ? AND data_checkout > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var conflicts int64
	if err := q.Count(&conflicts).Error; err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return conflicts == 0, nil
}

// IsRoomAvailable answers the availability question outside a booking
// transaction, for display purposes. Booking paths never rely on this
// snapshot; they re-check under the room lock.
func (s *ReservationService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	return s.isRoomAvailable(s.DB, roomID, utils.DateOnly(checkIn), utils.DateOnly(checkOut), excludeID)
}

func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	checkIn := utils.DateOnly(input.CheckIn)
	checkOut := utils.DateOnly(input.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	var created *models.Reservation
	err := s.withLockRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			var room models.Room
			if err := lockForUpdate(tx).First(&room, input.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("failed to fetch room: %w", err)
			}

			free, err := s.isRoomAvailable(tx, room.ID, checkIn, checkOut, 0)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}

			res := models.Reservation{
				Code:       uuid.NewString(),
				RoomID:     room.ID,
				ClientID:   input.ClientID,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				TotalValue: Price(room.DailyRate, checkIn, checkOut),
				Status:     string(StatusPending),
			}
			if err := tx.Create(&res).Error; err != nil {
				return fmt.Errorf("failed to create reservation: %w", err)
			}
			created = &res
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := s.DB.Preload("Room").Preload("Client").First(&res, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}
	return &res, nil
}

// List returns reservations newest check-in first, optionally narrowed by
// status (any accepted synonym) and check-in month.
func (s *ReservationService) List(filter ReservationFilter) ([]models.Reservation, error) {
	q := s.DB.Preload("Room").Preload("Client").Order("data_checkin DESC")

	if filter.Status != "" {
		canonical, ok := NormalizeStatus(filter.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status IN ?", synonymsOf(canonical))
	}
	if filter.Month != "" {
		start, end, err := utils.MonthRange(filter.Month)
		if err != nil {
			return nil, ErrInvalidMonthFilter
		}
		q = q.Where("data_checkin >= ? AND data_checkin < ?", start, end)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var out []models.Reservation
	if err := q.Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return out, nil
}

// Update applies a partial update. Date changes re-run the availability check
// under the room lock, excluding this reservation, and reprice the stay at
// the room's current daily rate. Status changes follow the transition rules.
func (s *ReservationService) Update(id uint, input UpdateReservationInput) (*models.Reservation, error) {
	var targetStatus ReservationStatus
	if input.Status != nil {
		canonical, ok := NormalizeStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		targetStatus = canonical
	}

	err := s.withLockRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			var res models.Reservation
			if err := tx.First(&res, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrReservationNotFound
				}
				return fmt.Errorf("failed to fetch reservation: %w", err)
			}

			datesChanged := input.CheckIn != nil || input.CheckOut != nil
			newCheckIn := utils.DateOnly(res.CheckIn)
			newCheckOut := utils.DateOnly(res.CheckOut)
			if input.CheckIn != nil {
				newCheckIn = utils.DateOnly(*input.CheckIn)
			}
			if input.CheckOut != nil {
				newCheckOut = utils.DateOnly(*input.CheckOut)
			}

			if datesChanged {
				if !newCheckOut.After(newCheckIn) {
					return ErrInvalidDateRange
				}

				var room models.Room
				if err := lockForUpdate(tx).First(&room, res.RoomID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrRoomNotFound
					}
					return fmt.Errorf("failed to fetch room: %w", err)
				}

				free, err := s.isRoomAvailable(tx, res.RoomID, newCheckIn, newCheckOut, res.ID)
				if err != nil {
					return err
				}
				if !free {
					return ErrRoomUnavailable
				}

				res.CheckIn = newCheckIn
				res.CheckOut = newCheckOut
				res.TotalValue = Price(room.DailyRate, newCheckIn, newCheckOut)
			}

			if input.Status != nil {
				next, err := applyTransition(currentStatus(&res), targetStatus)
				if err != nil {
					return err
				}
				res.Status = string(next)
			}

			if err := tx.Save(&res).Error; err != nil {
				return fmt.Errorf("failed to update reservation: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// CheckIn moves a pending reservation to active. Any other current state,
// including already-active, is refused.
func (s *ReservationService) CheckIn(id uint) (*models.Reservation, error) {
	return s.transition(id, StatusActive, true)
}

// CheckOut completes an active reservation.
func (s *ReservationService) CheckOut(id uint) (*models.Reservation, error) {
	return s.transition(id, StatusCompleted, true)
}

// Cancel flips a pending or active reservation to cancelled. The record is
// retained. Cancelling an already-cancelled reservation is a no-op success;
// completed reservations cannot be cancelled.
func (s *ReservationService) Cancel(id uint) (*models.Reservation, error) {
	return s.transition(id, StatusCancelled, false)
}

func (s *ReservationService) transition(id uint, target ReservationStatus, strict bool) (*models.Reservation, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("failed to fetch reservation: %w", err)
		}

		current := currentStatus(&res)
		if strict && current == target {
			return ErrInvalidStatusTransition
		}
		next, err := applyTransition(current, target)
		if err != nil {
			return err
		}
		if string(next) == res.Status {
			return nil
		}
		res.Status = string(next)
		if err := tx.Save(&res).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// currentStatus normalizes the stored value; rows written before
// normalization may still hold a synonym.
func currentStatus(res *models.Reservation) ReservationStatus {
	if canonical, ok := NormalizeStatus(res.Status); ok {
		return canonical
	}
	return StatusPending
}

// applyTransition enforces the state machine:
//
//	pendente -> ativa -> concluida
//	pendente, ativa -> cancelada
//
// concluida and cancelada are terminal, except that re-cancelling a
// cancelled reservation is accepted as a no-op.
func applyTransition(current, target ReservationStatus) (ReservationStatus, error) {
	if current == target {
		return current, nil
	}
	switch target {
	case StatusActive:
		if current == StatusPending {
			return StatusActive, nil
		}
	case StatusCompleted:
		if current == StatusActive {
			return StatusCompleted, nil
		}
	case StatusCancelled:
		if current == StatusPending || current == StatusActive {
			return StatusCancelled, nil
		}
	}
	return current, ErrInvalidStatusTransition
}

// withLockRetry re-runs fn a bounded number of times when MySQL aborts the
// transaction with a deadlock or lock wait timeout. When the attempts are
// exhausted the conflict surfaces as ErrRoomUnavailable: some concurrent
// booking held the room.
func (s *ReservationService) withLockRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxBookingAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryableLockError(err) {
			return err
		}
		log.Printf("booking transaction aborted by lock conflict (attempt %d/%d): %v", attempt, maxBookingAttempts, err)
	}
	return ErrRoomUnavailable
}
