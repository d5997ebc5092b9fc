package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pousada-backend/models"
	"pousada-backend/services"
	"pousada-backend/utils"
)

type ClientController struct {
	ClientSvc *services.ClientService
}

func NewClientController(svc *services.ClientService) *ClientController {
	return &ClientController{ClientSvc: svc}
}

type createClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Document string `json:"document" binding:"required"`
	Address  string `json:"address"`
}

// POST /api/clientes
func (ctrl *ClientController) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}

	client, err := ctrl.ClientSvc.Create(&models.Client{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GET /api/clientes
func (ctrl *ClientController) GetClients(c *gin.Context) {
	offset, limit := parsePagination(c)
	clients, err := ctrl.ClientSvc.List(offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GET /api/clientes/:id
func (ctrl *ClientController) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	client, err := ctrl.ClientSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// PUT /api/clientes/:id
func (ctrl *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch services.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}
	client, err := ctrl.ClientSvc.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DELETE /api/clientes/:id
func (ctrl *ClientController) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.ClientSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
