package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pousada-backend/services"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GET /api/dashboard
func (ctrl *DashboardController) GetSummary(c *gin.Context) {
	summary, err := ctrl.DashboardSvc.Summary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
