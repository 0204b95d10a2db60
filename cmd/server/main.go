package main

import (
	"net/http"
	"os"
	"time"

	_ "clinix/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"clinix/internal/auth"
	"clinix/internal/cache"
	"clinix/internal/config"
	"clinix/internal/db"
	"clinix/internal/handler"
	"clinix/internal/repository"
	"clinix/internal/router"
	"clinix/internal/service"
	"clinix/internal/storage"
)

// @title Clinix API
// @version 1.0
// @description Healthcare appointment booking backend with doctors, patients, appointments, and prescriptions.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	photoStore, err := storage.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init")
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	prescriptionRepo := repository.NewPrescriptionRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	inviteStore := auth.NewInviteStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, inviteStore)
	userService := service.NewUserService(userRepo, photoStore, cacheClient)
	doctorService := service.NewDoctorService(userRepo, cacheClient)
	appointmentService := service.NewAppointmentService(appointmentRepo, prescriptionRepo, userRepo, inviteStore)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, appointmentRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		userRepo,
		photoStore,
		authHandler,
		userHandler,
		doctorHandler,
		appointmentHandler,
		prescriptionHandler,
	)

	log.Info().Str("port", cfg.ServerPort).Msg("starting server")
	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
