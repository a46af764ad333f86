package app

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevartrix/dshop-booking-backend/internal/api"
	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	"github.com/gevartrix/dshop-booking-backend/internal/device"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/storage"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	StorageRoot  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	UserService    user.Service
	DeviceService  device.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Device module
	deviceRepo := device.NewPgxRepository(cfg.DBPool)
	deviceService := device.NewService(deviceRepo, store)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, deviceService)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		DeviceService:  deviceService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		DeviceService:  deviceService,
		BookingService: bookingService,
	}
}
