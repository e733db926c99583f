package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/manavumd/dental-management-system/internal/cache"
	"github.com/manavumd/dental-management-system/internal/config"
	appointmentHandler "github.com/manavumd/dental-management-system/internal/handler/appointment"
	availabilityHandler "github.com/manavumd/dental-management-system/internal/handler/availability"
	clinicHandler "github.com/manavumd/dental-management-system/internal/handler/clinic"
	doctorHandler "github.com/manavumd/dental-management-system/internal/handler/doctor"
	healthHandler "github.com/manavumd/dental-management-system/internal/handler/health"
	patientHandler "github.com/manavumd/dental-management-system/internal/handler/patient"
	scheduleHandler "github.com/manavumd/dental-management-system/internal/handler/schedule"
	specialtyHandler "github.com/manavumd/dental-management-system/internal/handler/specialty"
	visitHandler "github.com/manavumd/dental-management-system/internal/handler/visit"
	"github.com/manavumd/dental-management-system/internal/middleware"
	"github.com/manavumd/dental-management-system/internal/repository/postgres"
	"github.com/manavumd/dental-management-system/internal/router"
	appointmentService "github.com/manavumd/dental-management-system/internal/service/appointment"
	availabilityService "github.com/manavumd/dental-management-system/internal/service/availability"
	clinicService "github.com/manavumd/dental-management-system/internal/service/clinic"
	doctorService "github.com/manavumd/dental-management-system/internal/service/doctor"
	patientService "github.com/manavumd/dental-management-system/internal/service/patient"
	scheduleService "github.com/manavumd/dental-management-system/internal/service/schedule"
	specialtyService "github.com/manavumd/dental-management-system/internal/service/specialty"
	visitService "github.com/manavumd/dental-management-system/internal/service/visit"
	"github.com/manavumd/dental-management-system/pkg/logger"
	"github.com/manavumd/dental-management-system/pkg/metrics"
)

func main() {
	logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	clinicRepo := postgres.NewClinicRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	visitRepo := postgres.NewVisitRepository(db)

	slotCache := newSlotCache(cfg.Cache)

	m := metrics.NewMetrics(prometheus.DefaultRegisterer, "dental")

	availabilitySvc := availabilityService.NewService(scheduleRepo, appointmentRepo, slotCache, m, time.UTC)
	appointmentSvc := appointmentService.NewService(appointmentRepo, scheduleRepo, patientRepo, availabilitySvc, slotCache, m, time.UTC)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst:   cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			MetricsPrefix:    "dental_http",
		},
		healthHandler.NewHandler(db),
		clinicHandler.NewHandler(clinicService.NewService(clinicRepo)),
		specialtyHandler.NewHandler(specialtyService.NewService(specialtyRepo)),
		doctorHandler.NewHandler(doctorService.NewService(doctorRepo, specialtyRepo)),
		patientHandler.NewHandler(patientService.NewService(patientRepo)),
		scheduleHandler.NewHandler(scheduleService.NewService(scheduleRepo, doctorRepo, clinicRepo)),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(appointmentSvc),
		visitHandler.NewHandler(visitService.NewService(visitRepo, patientRepo, specialtyRepo)),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if closer, ok := slotCache.(interface{ Close() error }); ok && closer != nil {
		_ = closer.Close()
	}
}

// newSlotCache picks the slot-cache backend. A redis failure degrades
// to no caching rather than refusing to start.
func newSlotCache(cfg config.CacheConfig) cache.SlotCache {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemorySlotCache(cfg.TTL)
	case "redis":
		c, err := cache.NewRedisSlotCache(cfg.RedisURL, cfg.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, slot caching disabled")
			return nil
		}
		return c
	default:
		return nil
	}
}
