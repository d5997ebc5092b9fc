package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pousada-backend/services"
	"pousada-backend/utils"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
	ClientSvc      *services.ClientService
}

func NewReservationController(reservationSvc *services.ReservationService, clientSvc *services.ClientService) *ReservationController {
	return &ReservationController{ReservationSvc: reservationSvc, ClientSvc: clientSvc}
}

type createReservationRequest struct {
	RoomID   uint   `json:"quarto_id" binding:"required"`
	ClientID uint   `json:"client_id" binding:"required"`
	CheckIn  string `json:"data_checkin" binding:"required"`
	CheckOut string `json:"data_checkout" binding:"required"`
}

type updateReservationRequest struct {
	CheckIn  *string `json:"data_checkin"`
	CheckOut *string `json:"data_checkout"`
	Status   *string `json:"status"`
}

// POST /api/reservas
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "data_checkin inválida. Use o formato YYYY-MM-DD")
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "data_checkout inválida. Use o formato YYYY-MM-DD")
		return
	}

	// The reservation core trusts client ids; the registry is the
	// collaborator that validates them, here at the boundary.
	if _, err := ctrl.ClientSvc.GetByID(req.ClientID); err != nil {
		respondServiceError(c, err)
		return
	}

	res, err := ctrl.ReservationSvc.Create(services.CreateReservationInput{
		RoomID:   req.RoomID,
		ClientID: req.ClientID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/reservas?status=&mes=YYYY-MM&skip=&limit=
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	offset, limit := parsePagination(c)
	reservations, err := ctrl.ReservationSvc.List(services.ReservationFilter{
		Status: c.Query("status"),
		Month:  c.Query("mes"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GET /api/reservas/:id
func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	res, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /api/reservas/:id
func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}

	var input services.UpdateReservationInput
	if req.CheckIn != nil {
		t, err := utils.ParseDate(*req.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "data_checkin inválida. Use o formato YYYY-MM-DD")
			return
		}
		input.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := utils.ParseDate(*req.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "data_checkout inválida. Use o formato YYYY-MM-DD")
			return
		}
		input.CheckOut = &t
	}
	input.Status = req.Status

	res, err := ctrl.ReservationSvc.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservas/:id/checkin
func (ctrl *ReservationController) CheckInReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	res, err := ctrl.ReservationSvc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservas/:id/checkout
func (ctrl *ReservationController) CheckOutReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	res, err := ctrl.ReservationSvc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /api/reservas/:id — kept for backward-compatible callers; the record
// is cancelled, never removed.
func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	res, err := ctrl.ReservationSvc.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
