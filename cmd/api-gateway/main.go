package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/schoolworks/campus-api/internal/handler"
	"github.com/schoolworks/campus-api/internal/middleware"
	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/repository"
	"github.com/schoolworks/campus-api/internal/service"

	_ "github.com/schoolworks/campus-api/api/swagger"
	"github.com/schoolworks/campus-api/pkg/cache"
	"github.com/schoolworks/campus-api/pkg/config"
	"github.com/schoolworks/campus-api/pkg/database"
	"github.com/schoolworks/campus-api/pkg/logger"
	corsmiddleware "github.com/schoolworks/campus-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schoolworks/campus-api/pkg/middleware/requestid"
)

// @title Campus Ops API
// @version 1.0.0
// @description Class scheduling and attendance aggregation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	calendar, err := models.NewPeriodCalendarFromJSON(cfg.Timetable.PeriodsJSON)
	if err != nil {
		logr.Sugar().Fatalw("invalid period configuration", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Summary.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, summary cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	clock := service.SystemClock()

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Summary.CacheTTL, logr, cfg.Summary.CacheEnabled)

	teacherRepo := repository.NewTeacherRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)

	timetableSvc := service.NewTimetableService(timetableRepo, teacherRepo, calendar, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, timetableSvc, cacheSvc, clock, validate, logr)
	summarySvc := service.NewSummaryService(attendanceRepo, studentRepo, cacheSvc, clock, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "campus-api",
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Timetable:   handler.NewTimetableHandler(timetableSvc),
		Teachers:    handler.NewTeacherHandler(teacherRepo),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc, timetableSvc, clock, metricsSvc),
		Summaries:   handler.NewSummaryHandler(summarySvc, cfg.Export.Enabled),
		Views:       handler.NewViewHandler(),
		AuthService: authSvc,
		Metrics:     metricsSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
