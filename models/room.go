package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Operational room status, set by staff. Independent from the occupancy
// derived from reservations; "ocupado" forces free calendar days to show
// as occupied.
const (
	RoomStatusFree        = "livre"
	RoomStatusOccupied    = "ocupado"
	RoomStatusCleaning    = "limpeza"
	RoomStatusMaintenance = "manutencao"
)

// Rooms are removed outright on delete; stay history lives in the
// reservations, not the room row. A soft-delete column would keep the deleted
// row in the unique index and block the number from ever being reused.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Number      string          `gorm:"column:numero;uniqueIndex;type:varchar(10)" json:"numero"`
	Type        string          `gorm:"column:tipo;type:varchar(50)" json:"tipo"`
	Status      string          `gorm:"column:status;type:varchar(20);default:livre" json:"status"`
	Capacity    int             `gorm:"column:capacidade;default:1" json:"capacidade"`
	DailyRate   decimal.Decimal `gorm:"column:valor_diaria;type:decimal(10,2)" json:"valor_diaria"`
	Description string          `gorm:"column:descricao;type:text" json:"descricao,omitempty"`
	Amenities   datatypes.JSON  `gorm:"column:comodidades" json:"comodidades,omitempty"`
}

func (Room) TableName() string { return "quartos" }

// ValidRoomStatus reports whether s is one of the operational flags above.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusFree, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}
