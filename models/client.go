package models

import "time"

// Client is a hotel guest. Reservations reference clients by id; the
// reservation core trusts the id and never validates guest identity itself.
// Deletes are physical, like rooms: keeping soft-deleted rows would pin the
// unique email and document values forever.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"column:name;type:varchar(100);index" json:"name"`
	Email    string `gorm:"column:email;type:varchar(100);uniqueIndex" json:"email"`
	Phone    string `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Document string `gorm:"column:document;type:varchar(20);uniqueIndex" json:"document"`
	Address  string `gorm:"column:address;type:text" json:"address,omitempty"`
}

func (Client) TableName() string { return "clients" }
