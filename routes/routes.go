package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pousada-backend/controllers"
	"pousada-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers into the API surface. Authentication is
// handled upstream; requests arriving here are trusted.
func SetupRouter(
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	cc *controllers.ClientController,
	dc *controllers.DashboardController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		quartos := api.Group("/quartos")
		{
			quartos.GET("", rc.GetRooms)
			quartos.POST("", rc.CreateRoom)

			// Must come before /:id.
			quartos.GET("/calendario", rc.GetCalendar)

			quartos.GET("/:id", rc.GetRoom)
			quartos.PUT("/:id", rc.UpdateRoom)
			quartos.PATCH("/:id", rc.UpdateRoom)
			quartos.DELETE("/:id", rc.DeleteRoom)
		}

		reservas := api.Group("/reservas")
		{
			reservas.GET("", resc.GetReservations)
			reservas.POST("", middleware.RateLimitReservationsCreate(), resc.CreateReservation)
			reservas.GET("/:id", resc.GetReservation)
			reservas.PUT("/:id", resc.UpdateReservation)
			reservas.PATCH("/:id", resc.UpdateReservation)
			reservas.DELETE("/:id", resc.DeleteReservation)
			reservas.POST("/:id/checkin", resc.CheckInReservation)
			reservas.POST("/:id/checkout", resc.CheckOutReservation)
		}

		clientes := api.Group("/clientes")
		{
			clientes.GET("", cc.GetClients)
			clientes.POST("", cc.CreateClient)
			clientes.GET("/:id", cc.GetClient)
			clientes.PUT("/:id", cc.UpdateClient)
			clientes.DELETE("/:id", cc.DeleteClient)
		}

		api.GET("/dashboard", dc.GetSummary)
	}

	return r
}
