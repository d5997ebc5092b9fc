package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType is the closed set of bookable room categories. The set is seeded
// at startup (see config.SeedDatabase) and can be overridden via ROOM_TYPES,
// so the category list is configuration, not code.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"column:nome;uniqueIndex;type:varchar(50)" json:"nome"`
	Description string `gorm:"column:descricao;type:varchar(255)" json:"descricao"`

	CreatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RoomType) TableName() string { return "tipos_quarto" }
