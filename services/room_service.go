package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pousada-backend/models"
)

// RoomService owns the room registry: numbers are unique, types come from the
// seeded closed set, and a room cannot be removed while a pending or active
// reservation still references it.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomPatch carries a partial update; nil fields are left untouched.
type RoomPatch struct {
	Number      *string          `json:"numero"`
	Type        *string          `json:"tipo"`
	Capacity    *int             `json:"capacidade"`
	DailyRate   *decimal.Decimal `json:"valor_diaria"`
	Status      *string          `json:"status"`
	Description *string          `json:"descricao"`
	Amenities   datatypes.JSON   `json:"comodidades"`
}

func (s *RoomService) validateType(tipo string) error {
	var count int64
	if err := s.DB.Model(&models.RoomType{}).Where("nome = ?", tipo).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check room type: %w", err)
	}
	if count == 0 {
		return ErrInvalidRoomType
	}
	return nil
}

// numberTaken reports whether another room already uses this exact number.
// The SQL match may be case-insensitive depending on the column collation, so
// the exact comparison happens in Go.
func (s *RoomService) numberTaken(number string, excludeID uint) (bool, error) {
	var candidates []models.Room
	q := s.DB.Where("numero = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return false, fmt.Errorf("failed to check room number: %w", err)
	}
	for _, r := range candidates {
		if r.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *RoomService) Create(room *models.Room) (*models.Room, error) {
	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		return nil, ErrInvalidRoomNumber
	}
	if err := s.validateType(room.Type); err != nil {
		return nil, err
	}
	if room.Status == "" {
		room.Status = models.RoomStatusFree
	}
	if !models.ValidRoomStatus(room.Status) {
		return nil, ErrInvalidRoomStatus
	}
	if room.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if room.DailyRate.IsNegative() {
		return nil, ErrInvalidDailyRate
	}

	// Exact, case-sensitive match. The unique index is the backstop for
	// concurrent creates.
	dup, err := s.numberTaken(room.Number, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateRoomNumber
	}

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}
	return &room, nil
}

// List returns rooms ordered by number.
func (s *RoomService) List(offset, limit int) ([]models.Room, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var rooms []models.Room
	err := s.DB.Order("numero").Offset(offset).Limit(limit).Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Update(id uint, patch RoomPatch) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Number != nil {
		number := strings.TrimSpace(*patch.Number)
		if number == "" {
			return nil, ErrInvalidRoomNumber
		}
		if number != room.Number {
			dup, err := s.numberTaken(number, id)
			if err != nil {
				return nil, err
			}
			if dup {
				return nil, ErrDuplicateRoomNumber
			}
		}
		room.Number = number
	}
	if patch.Type != nil {
		if err := s.validateType(*patch.Type); err != nil {
			return nil, err
		}
		room.Type = *patch.Type
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		room.Capacity = *patch.Capacity
	}
	if patch.DailyRate != nil {
		if patch.DailyRate.IsNegative() {
			return nil, ErrInvalidDailyRate
		}
		room.DailyRate = *patch.DailyRate
	}
	if patch.Status != nil {
		if !models.ValidRoomStatus(*patch.Status) {
			return nil, ErrInvalidRoomStatus
		}
		room.Status = *patch.Status
	}
	if patch.Description != nil {
		room.Description = *patch.Description
	}
	if patch.Amenities != nil {
		room.Amenities = patch.Amenities
	}

	if err := s.DB.Save(room).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

// Delete removes a room unless a pending or active reservation references it.
// Completed and cancelled reservations are history and do not block.
func (s *RoomService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var blocking int64
	err := s.DB.Model(&models.Reservation{}).
		Where("quarto_id = ? AND status IN ?", id, blockingStatuses()).
		Count(&blocking).Error
	if err != nil {
		return fmt.Errorf("failed to check reservations: %w", err)
	}
	if blocking > 0 {
		return ErrRoomHasActiveReservations
	}

	if err := s.DB.Delete(&models.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
