package app

import (
	"database/sql"
	"net/http"
	"time"

	"go-staffhub/internal/audit"
	"go-staffhub/internal/calendar/calendar_http"
	"go-staffhub/internal/config"
	"go-staffhub/internal/event"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/orderrequest"
	"go-staffhub/internal/rbac"
	"go-staffhub/internal/rbac/infra"
	"go-staffhub/internal/rsvp"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/response"
	"go-staffhub/internal/timeentry"
	"go-staffhub/internal/timeoff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type moduleDeps struct {
	cfg    config.Config
	loc    *time.Location
	db     *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
	logger *zap.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) error {
	logger := deps.logger

	// --- Repositories ---
	timeEntryRepo := timeentry.NewRepository(deps.gormDB)
	timeOffRepo := timeoff.NewRepository(deps.gormDB)
	rsvpRepo := rsvp.NewRepository(deps.gormDB)
	eventRepo := event.NewRepository(deps.gormDB)
	orderRepo := orderrequest.NewRepository(deps.gormDB)
	auditRepo := audit.NewRepository(deps.gormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(), enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	timeEntryService := timeentry.NewService(timeEntryRepo,
		timeentry.WithLogger(logger),
		timeentry.WithLocation(deps.loc),
	)
	timeOffService := timeoff.NewService(deps.db, timeOffRepo,
		timeoff.WithLogger(logger),
		timeoff.WithLocation(deps.loc),
		timeoff.WithOutbox(outboxRepo),
		timeoff.WithDayCache(deps.rdb),
	)
	rsvpService := rsvp.NewService(rsvpRepo, logger)
	eventService := event.NewService(eventRepo,
		event.WithLogger(logger),
		event.WithAttendees(rsvpService),
	)
	orderService := orderrequest.NewService(orderRepo, orderrequest.WithLogger(logger))
	auditService := audit.NewService(auditRepo, logger)

	// --- Handlers ---
	auth := middleware.NewAuthenticator(deps.cfg.JWTSecret)
	writeLimit := userWriteLimit(deps.cfg)
	timeEntryHandler := timeentry.NewHandler(timeEntryService, deps.loc, logger)
	timeOffHandler := timeoff.NewHandler(timeOffService, logger)
	rsvpHandler := rsvp.NewHandler(rsvpService, logger)
	eventHandler := event.NewHandler(eventService, logger)
	orderHandler := orderrequest.NewHandler(orderService, logger)
	auditHandler := audit.NewHandler(auditService, logger)
	calendarHandler := calendar_http.NewHandler(deps.loc)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	router.GET("/healthz", func(c *gin.Context) {
		if err := deps.db.PingContext(c.Request.Context()); err != nil {
			response.Fail(c, apperror.StoreUnavailable(err))
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		timeentry.RegisterRoutes(api, timeEntryHandler, rbacService, auth, writeLimit)
		timeoff.RegisterRoutes(api, timeOffHandler, rbacService, auth, deps.rdb, writeLimit)
		audit.RegisterRoutes(api, auditHandler, rbacService, auth)
		rsvp.RegisterRoutes(api, rsvpHandler, rbacService, auth, deps.rdb, writeLimit)
		event.RegisterRoutes(api, eventHandler, rbacService, auth, deps.rdb, writeLimit)
		orderrequest.RegisterRoutes(api, orderHandler, rbacService, auth, deps.rdb, writeLimit)
		calendar_http.RegisterRoutes(api, calendarHandler)
		rbac.RegisterRoutes(api, rbacHandler, auth.Required())
	}

	return nil
}

// userWriteLimit throttles mutating routes per signed-in user; a
// non-positive rate disables it.
func userWriteLimit(cfg config.Config) gin.HandlerFunc {
	limit := rate.Limit(cfg.UserRateLimitRPS)
	if limit <= 0 {
		limit = rate.Inf
	}
	return middleware.RateLimitByUser(limit, cfg.UserRateLimitBurst)
}
