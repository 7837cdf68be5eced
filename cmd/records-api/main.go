package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusworks/student-records-api/api/swagger"
	"github.com/campusworks/student-records-api/internal/handler"
	"github.com/campusworks/student-records-api/internal/middleware"
	"github.com/campusworks/student-records-api/internal/repository"
	"github.com/campusworks/student-records-api/internal/service"
	"github.com/campusworks/student-records-api/pkg/cache"
	"github.com/campusworks/student-records-api/pkg/config"
	"github.com/campusworks/student-records-api/pkg/logger"
	corsmiddleware "github.com/campusworks/student-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusworks/student-records-api/pkg/middleware/requestid"
)

// @title Student Records API
// @version 0.2.0
// @description In-memory educational records service: persons, addresses, courses, enrollments
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := repository.NewRegistry()
	validate := service.NewValidator()

	personSvc := service.NewPersonService(registry.Persons(), validate, logr)
	addressSvc := service.NewAddressService(registry.Addresses(), validate, logr)
	courseSvc := service.NewCourseService(registry.Courses(), validate, logr)
	enrollmentSvc := service.NewEnrollmentService(registry.Enrollments(), registry.Persons(), registry.Courses(), validate, logr)
	healthSvc := service.NewHealthService()
	metricsSvc := service.NewMetricsService()

	personH := handler.NewPersonHandler(personSvc, enrollmentSvc)
	addressH := handler.NewAddressHandler(addressSvc)
	courseH := handler.NewCourseHandler(courseSvc)
	enrollmentH := handler.NewEnrollmentHandler(enrollmentSvc)
	healthH := handler.NewHealthHandler(healthSvc)
	metricsH := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	readCache := func(c *gin.Context) { c.Next() }
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, response cache disabled", "error", err)
		} else {
			readCache = middleware.Cache(client, cfg.Cache.TTL, metricsSvc)
		}
	}

	api := r.Group(cfg.APIPrefix)

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Student Records API",
			"resources": gin.H{
				"persons":     "/persons",
				"addresses":   "/addresses",
				"courses":     "/courses",
				"enrollments": "/enrollments",
				"health":      "/health",
				"docs":        "/docs/index.html",
			},
		})
	})

	api.GET("/health", healthH.Check)
	api.GET("/health/:path_echo", healthH.CheckWithPath)

	api.POST("/persons", personH.Create)
	api.GET("/persons", readCache, personH.List)
	api.GET("/persons/:id", personH.Get)
	api.PATCH("/persons/:id", personH.Update)

	api.GET("/students/:uni/enrollments", readCache, personH.Enrollments)
	api.GET("/students/:uni/courses", readCache, personH.Courses)

	api.POST("/addresses", addressH.Create)
	api.GET("/addresses", readCache, addressH.List)
	api.GET("/addresses/:id", addressH.Get)
	api.PATCH("/addresses/:id", addressH.Update)

	api.POST("/courses", courseH.Create)
	api.GET("/courses", readCache, courseH.List)
	api.GET("/courses/:id", courseH.Get)
	api.PUT("/courses/:id", courseH.Replace)
	api.PATCH("/courses/:id", courseH.Update)
	api.DELETE("/courses/:id", courseH.Delete)
	api.GET("/courses/:id/enrollments", readCache, enrollmentH.ForCourse)
	api.GET("/courses/:id/enrollments/export", enrollmentH.ExportRoster)

	api.POST("/enrollments", enrollmentH.Create)
	api.GET("/enrollments", readCache, enrollmentH.List)
	api.GET("/enrollments/:id", enrollmentH.Get)
	api.PUT("/enrollments/:id", enrollmentH.Replace)
	api.PATCH("/enrollments/:id", enrollmentH.Update)
	api.DELETE("/enrollments/:id", enrollmentH.Delete)

	r.GET("/metrics", metricsH.Prometheus)

	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
