package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pousada-backend/models"
	"pousada-backend/utils"
)

// Day status values reported by the occupancy calendar.
const (
	DayStatusCheckIn  = "checkin"
	DayStatusCheckOut = "checkout"
	DayStatusOccupied = "ocupado"
	DayStatusFree     = "livre"
)

// CalendarDay is one cell of the per-room occupancy grid. The reservation
// fields are filled when a non-cancelled reservation covers the day, for
// calendar tooltips.
type CalendarDay struct {
	Date              string `json:"data"`
	Status            string `json:"status"`
	ReservationID     *uint  `json:"reserva_id,omitempty"`
	ReservationStatus string `json:"reserva_status,omitempty"`
	ClientID          *uint  `json:"cliente_id,omitempty"`
}

// RoomCalendar is the occupancy of one room over the requested window,
// one entry per day, chronological.
type RoomCalendar struct {
	RoomID      uint            `json:"quarto_id"`
	Number      string          `json:"numero"`
	Type        string          `json:"tipo"`
	Status      string          `json:"status"`
	Capacity    int             `json:"capacidade"`
	DailyRate   decimal.Decimal `json:"valor_diaria"`
	PeriodStart string          `json:"periodo_inicio"`
	PeriodEnd   string          `json:"periodo_fim"`
	Days        []CalendarDay   `json:"ocupacao"`
}

// CalendarService projects rooms and reservations onto a per-day grid. It is
// read-only and takes no locks.
type CalendarService struct {
	DB *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{DB: db}
}

// BuildCalendar returns the occupancy of every room for each day of
// [start, end], both inclusive, rooms ordered by number.
func (s *CalendarService) BuildCalendar(start, end time.Time) ([]RoomCalendar, error) {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	var rooms []models.Room
	if err := s.DB.Order("numero").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if len(rooms) == 0 {
		return []RoomCalendar{}, nil
	}

	// One query for every reservation touching the window; occupied days are
	// [data_checkin, data_checkout), so the window comparison is half-open too.
	var reservations []models.Reservation
	err := s.DB.
		Where("status NOT IN ?", cancelledStatuses()).
		Where("data_checkin < ? AND data_checkout > ?", end.AddDate(0, 0, 1), start).
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	byRoom := make(map[uint][]models.Reservation, len(rooms))
	for _, res := range reservations {
		byRoom[res.RoomID] = append(byRoom[res.RoomID], res)
	}

	calendar := make([]RoomCalendar, 0, len(rooms))
	for _, room := range rooms {
		calendar = append(calendar, RoomCalendar{
			RoomID:      room.ID,
			Number:      room.Number,
			Type:        room.Type,
			Status:      room.Status,
			Capacity:    room.Capacity,
			DailyRate:   room.DailyRate,
			PeriodStart: utils.FormatDate(start),
			PeriodEnd:   utils.FormatDate(end),
			Days:        buildDayEntries(&room, byRoom[room.ID], start, end),
		})
	}
	return calendar, nil
}

// buildDayEntries walks every day of [start, end]. A covered day is labelled
// "checkin" on the reservation's first day and "checkout" on its last
// occupied day (checkOut - 1; the checkOut date itself is already free under
// half-open semantics), with "ocupado" strictly in between. Free days flip to
// "ocupado" when staff flagged the room itself as occupied.
func buildDayEntries(room *models.Room, reservations []models.Reservation, start, end time.Time) []CalendarDay {
	covering := make(map[time.Time]*models.Reservation)
	for i := range reservations {
		res := &reservations[i]
		from := utils.DateOnly(res.CheckIn)
		if from.Before(start) {
			from = start
		}
		to := utils.DateOnly(res.CheckOut)
		if limit := end.AddDate(0, 0, 1); to.After(limit) {
			to = limit
		}
		for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
			covering[day] = res
		}
	}

	totalDays := utils.Nights(start, end) + 1
	days := make([]CalendarDay, 0, totalDays)
	for offset := 0; offset < totalDays; offset++ {
		day := start.AddDate(0, 0, offset)
		entry := CalendarDay{Date: utils.FormatDate(day), Status: DayStatusFree}

		if res, ok := covering[day]; ok {
			switch {
			case day.Equal(utils.DateOnly(res.CheckIn)):
				entry.Status = DayStatusCheckIn
			case day.Equal(utils.DateOnly(res.CheckOut).AddDate(0, 0, -1)):
				entry.Status = DayStatusCheckOut
			default:
				entry.Status = DayStatusOccupied
			}
			id := res.ID
			clientID := res.ClientID
			entry.ReservationID = &id
			entry.ReservationStatus = res.Status
			entry.ClientID = &clientID
		} else if room.Status == models.RoomStatusOccupied {
			entry.Status = DayStatusOccupied
		}

		days = append(days, entry)
	}
	return days
}
