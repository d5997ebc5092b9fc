package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation books one room for one client over the half-open date interval
// [CheckIn, CheckOut). Reservations are never physically deleted: cancelling
// flips the status to "cancelada" and keeps the record.
//
// There is deliberately no DeletedAt column here.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code     string    `gorm:"column:codigo;type:varchar(36);uniqueIndex" json:"codigo"`
	RoomID   uint      `gorm:"column:quarto_id;index;not null" json:"quarto_id"`
	ClientID uint      `gorm:"column:client_id;index;not null" json:"client_id"`
	CheckIn  time.Time `gorm:"column:data_checkin;type:date;not null" json:"data_checkin"`
	CheckOut time.Time `gorm:"column:data_checkout;type:date;not null" json:"data_checkout"`

	// Nights × the room's daily rate at creation/update time. Not recomputed
	// when the room's rate later changes.
	TotalValue decimal.Decimal `gorm:"column:valor_total;type:decimal(10,2)" json:"valor_total"`

	Status string `gorm:"column:status;type:varchar(20);default:pendente;index" json:"status"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"quarto,omitempty"`
	Client Client `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
}

func (Reservation) TableName() string { return "reservas" }
