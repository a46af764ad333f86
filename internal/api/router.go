package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	bookingHttp "github.com/gevartrix/dshop-booking-backend/internal/booking/http"
	"github.com/gevartrix/dshop-booking-backend/internal/device"
	deviceHttp "github.com/gevartrix/dshop-booking-backend/internal/device/http"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
	userHttp "github.com/gevartrix/dshop-booking-backend/internal/user/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	DeviceService  device.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers the routes of
// every module under /api/v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		// The UI5 front end dev server.
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.TokenHeader}
	r.Use(cors.New(corsConfig))

	// authMiddleware: validates the caller's credential.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: the authorization gate for privileged operations.
	adminMiddleware := RequireAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.BookingService, cfg.JWTManager)
	deviceHandler := deviceHttp.NewHandler(cfg.DeviceService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/api/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		deviceHttp.RegisterRoutes(v1, deviceHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
	}

	return r
}
