package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pousada-backend/models"
	"pousada-backend/utils"
)

// DashboardStats are current-state counters for the admin landing page.
type DashboardStats struct {
	TotalClients       int64           `json:"total_clients"`
	TotalRooms         int64           `json:"total_rooms"`
	ActiveReservations int64           `json:"active_reservas"`
	OccupiedRooms      int64           `json:"occupied_rooms"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
}

// DashboardActivity is one line of the recent-activity feed.
type DashboardActivity struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	EventType   string    `json:"event_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardSummary struct {
	Stats            DashboardStats      `json:"stats"`
	RecentActivities []DashboardActivity `json:"recent_activities"`
}

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Summary computes today's occupancy numbers, the current month's booked
// revenue and the ten most recent reservations.
func (s *DashboardService) Summary() (*DashboardSummary, error) {
	today := utils.DateOnly(time.Now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	stats := DashboardStats{MonthlyRevenue: decimal.Zero}

	if err := s.DB.Model(&models.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	err := s.DB.Model(&models.Reservation{}).
		Where("status NOT IN ?", cancelledStatuses()).
		Where("data_checkout >= ?", today).
		Count(&stats.ActiveReservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active reservations: %w", err)
	}

	err = s.DB.Model(&models.Reservation{}).
		Distinct("quarto_id").
		Where("status NOT IN ?", cancelledStatuses()).
		Where("data_checkin <= ? AND data_checkout > ?", today, today).
		Count(&stats.OccupiedRooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	// Sum in Go with decimals; SUM() on the SQL side would re-introduce the
	// float accumulation the monetary columns exist to avoid.
	var monthly []models.Reservation
	err = s.DB.Select("valor_total").
		Where("status NOT IN ?", cancelledStatuses()).
		Where("data_checkin >= ? AND data_checkin < ?", monthStart, nextMonth).
		Find(&monthly).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	for _, res := range monthly {
		stats.MonthlyRevenue = stats.MonthlyRevenue.Add(res.TotalValue)
	}

	var recent []models.Reservation
	err = s.DB.Preload("Room").Preload("Client").
		Order("created_at DESC").Limit(10).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reservations: %w", err)
	}

	activities := make([]DashboardActivity, 0, len(recent))
	for i := range recent {
		activities = append(activities, buildActivity(&recent[i]))
	}

	return &DashboardSummary{Stats: stats, RecentActivities: activities}, nil
}

func buildActivity(res *models.Reservation) DashboardActivity {
	status := currentStatus(res)

	eventType := "reserva_confirmada"
	verb := "Reserva confirmada"
	if status == StatusCancelled {
		eventType = "reserva_cancelada"
		verb = "Reserva cancelada"
	}

	details := ""
	if res.Client.ID != 0 {
		details = res.Client.Name
	}
	if res.Room.ID != 0 {
		if details != "" {
			details += " - "
		}
		details += "Quarto " + res.Room.Number
	}
	if details == "" {
		details = fmt.Sprintf("Reserva #%d", res.ID)
	}

	return DashboardActivity{
		ID:          res.ID,
		Description: fmt.Sprintf("%s • %s", verb, details),
		Status:      string(status),
		EventType:   eventType,
		CreatedAt:   res.CreatedAt,
	}
}
