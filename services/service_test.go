package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pousada-backend/models"
)

// newTestDB opens a fresh in-memory database per test. The pool is pinned to
// one connection so every session sees the same :memory: store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.RoomType{},
		&models.Client{},
		&models.Room{},
		&models.Reservation{},
	))

	for _, name := range []string{"standard", "deluxe", "suite"} {
		require.NoError(t, db.Create(&models.RoomType{Name: name, Description: "Quarto " + name}).Error)
	}

	return db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed.UTC()
}

func seedRoom(t *testing.T, db *gorm.DB, number string, rate string) *models.Room {
	t.Helper()
	room := &models.Room{
		Number:    number,
		Type:      "standard",
		Status:    models.RoomStatusFree,
		Capacity:  2,
		DailyRate: decimal.RequireFromString(rate),
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedClient(t *testing.T, db *gorm.DB, name, email, document string) *models.Client {
	t.Helper()
	client := &models.Client{
		Name:     name,
		Email:    email,
		Phone:    "+55 11 99999-0000",
		Document: document,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}
