package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"guestdesk-backend/controllers"
	"guestdesk-backend/middleware"
	"guestdesk-backend/services"
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

// SetupRouter wires the panel's HTTP surface.
func SetupRouter(
	ac *controllers.AuthController,
	gc *controllers.GuestController,
	ec *controllers.ExportController,
	pc *controllers.PropertyController,
	store *services.SessionStore,
	log *zap.SugaredLogger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.GET("/session", middleware.RequireSession(store), ac.Session)
			auth.POST("/logout", middleware.RequireSession(store), ac.Logout)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireSession(store))
		{
			guests := protected.Group("/guests")
			{
				guests.GET("", gc.GetGuests)
				guests.POST("/export", ec.ExportTable)
				guests.POST("/export/details", ec.ExportDetails)
			}

			protected.GET("/bookings", gc.GetBookings)
			protected.GET("/property", pc.GetProperty)
		}
	}

	return r
}
