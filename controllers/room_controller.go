package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"pousada-backend/models"
	"pousada-backend/services"
	"pousada-backend/utils"
)

type RoomController struct {
	RoomSvc     *services.RoomService
	CalendarSvc *services.CalendarService
}

func NewRoomController(roomSvc *services.RoomService, calendarSvc *services.CalendarService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, CalendarSvc: calendarSvc}
}

type createRoomRequest struct {
	Number      string          `json:"numero" binding:"required"`
	Type        string          `json:"tipo" binding:"required"`
	Capacity    int             `json:"capacidade"`
	DailyRate   decimal.Decimal `json:"valor_diaria"`
	Status      string          `json:"status"`
	Description string          `json:"descricao"`
	Amenities   datatypes.JSON  `json:"comodidades"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return offset, limit
}

// POST /api/quartos
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room, err := ctrl.RoomSvc.Create(&models.Room{
		Number:      req.Number,
		Type:        req.Type,
		Capacity:    capacity,
		DailyRate:   req.DailyRate,
		Status:      req.Status,
		Description: req.Description,
		Amenities:   req.Amenities,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GET /api/quartos
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	offset, limit := parsePagination(c)
	rooms, err := ctrl.RoomSvc.List(offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/quartos/:id
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// PUT/PATCH /api/quartos/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch services.RoomPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}
	room, err := ctrl.RoomSvc.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/quartos/:id
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/quartos/calendario?data_inicio=YYYY-MM-DD&data_fim=YYYY-MM-DD
func (ctrl *RoomController) GetCalendar(c *gin.Context) {
	start, err := utils.ParseDate(c.Query("data_inicio"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "data_inicio inválida. Use o formato YYYY-MM-DD")
		return
	}
	end, err := utils.ParseDate(c.Query("data_fim"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "data_fim inválida. Use o formato YYYY-MM-DD")
		return
	}

	calendar, err := ctrl.CalendarSvc.BuildCalendar(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendar)
}
