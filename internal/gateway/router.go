package gateway

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/common/config"
	"github.com/phuchau23/CarS/internal/common/logger"
	"github.com/phuchau23/CarS/internal/common/middleware"
	"github.com/phuchau23/CarS/internal/recommend"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/scheduler"
	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/user"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// Server gom các service/repo mà API gateway cần.
type Server struct {
	cfg *config.Config
	log logger.Logger

	users        *user.Service
	userRepo     *user.Repo
	vehicles     *vehicle.Service
	vehicleRepo  *vehicle.Repo
	trips        *trip.Service
	tripRepo     *trip.Repo
	reminders    *reminder.Service
	reminderRepo *reminder.Repo
	recommends   *recommend.Repo
	sched        *scheduler.Service

	limiter *middleware.TokenBucket
}

type Deps struct {
	Users        *user.Service
	UserRepo     *user.Repo
	Vehicles     *vehicle.Service
	VehicleRepo  *vehicle.Repo
	Trips        *trip.Service
	TripRepo     *trip.Repo
	Reminders    *reminder.Service
	ReminderRepo *reminder.Repo
	Recommends   *recommend.Repo
	Scheduler    *scheduler.Service
}

func NewServer(cfg *config.Config, log logger.Logger, d Deps) *Server {
	return &Server{
		cfg:          cfg,
		log:          log,
		users:        d.Users,
		userRepo:     d.UserRepo,
		vehicles:     d.Vehicles,
		vehicleRepo:  d.VehicleRepo,
		trips:        d.Trips,
		tripRepo:     d.TripRepo,
		reminders:    d.Reminders,
		reminderRepo: d.ReminderRepo,
		recommends:   d.Recommends,
		sched:        d.Scheduler,
		// 200 req chứa, nạp lại 100 req/giây: đủ rộng cho gateway nội bộ.
		limiter: middleware.NewTokenBucket(200, 100),
	}
}

// Router dựng gin engine với middleware chung và toàn bộ route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(AccessLogMiddleware(s.log))
	r.Use(RateLimitMiddleware(s.limiter))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) { c.Status(204) })

	// Route công khai.
	authGrp := r.Group("/api/auth")
	{
		authGrp.POST("/register", s.handleRegister)
		authGrp.POST("/login", s.handleLogin)
	}

	// Route cần token.
	api := r.Group("/api")
	api.Use(AuthMiddleware(s.cfg.Auth))
	{
		api.POST("/vehicles", s.handleCreateVehicle)
		api.GET("/vehicles", s.handleListVehicles)
		api.GET("/vehicles/:id", s.handleGetVehicle)
		api.PATCH("/vehicles/:id/odometer", s.handleUpdateOdometer)
		api.POST("/vehicles/:id/service", s.handleRecordService)
		api.GET("/vehicles/:id/maintenance", s.handleMaintenanceStatus)
		api.GET("/vehicles/:id/reminders", s.handleVehicleReminders)
		api.GET("/vehicles/:id/lubricant", s.handleLubricant)
		api.DELETE("/vehicles/:id",
			RequireRoles(s.cfg.Auth, user.RoleManager, user.RoleAdmin),
			s.handleDeleteVehicle)

		api.POST("/trips", s.handleRecordTrip)
		api.GET("/trips", s.handleListTrips)

		api.GET("/reminders", s.handleListReminders)
		api.POST("/reminders/:id/sent", s.handleReminderTransition(reminder.StatusSent))
		api.POST("/reminders/:id/acknowledge", s.handleReminderTransition(reminder.StatusAcknowledged))
		api.POST("/reminders/:id/dismiss", s.handleReminderTransition(reminder.StatusDismissed))
		api.POST("/reminders/:id/complete", s.handleReminderTransition(reminder.StatusCompleted))

		api.GET("/users",
			RequireRoles(s.cfg.Auth, user.RoleManager, user.RoleAdmin),
			s.handleListUsers)

		api.POST("/scheduler/run",
			RequireRoles(s.cfg.Auth, user.RoleManager, user.RoleAdmin),
			s.handleRunScheduler)

		api.GET("/reports/monthly", s.handleMonthlyReport)
		api.GET("/reports/vehicles", s.handleVehicleRanking)

		// Xuất báo cáo chỉ dành cho người quản lý đội xe.
		export := api.Group("/export", RequireRoles(s.cfg.Auth, user.RoleManager, user.RoleAdmin))
		{
			export.GET("/trips", s.handleExportTrips)
			export.GET("/vehicles", s.handleExportVehicles)
			export.GET("/reminders", s.handleExportReminders)
		}
	}

	return r
}
