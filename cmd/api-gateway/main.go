package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuchau23/CarS/internal/common/config"
	"github.com/phuchau23/CarS/internal/common/db"
	"github.com/phuchau23/CarS/internal/common/logger"
	"github.com/phuchau23/CarS/internal/common/tracing"
	"github.com/phuchau23/CarS/internal/gateway"
	"github.com/phuchau23/CarS/internal/recommend"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/scheduler"
	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/user"
	"github.com/phuchau23/CarS/internal/vehicle"
)

var (
	configPath = flag.String("config", "configs/api-gateway.json", "đường dẫn file cấu hình")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	_, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}

	gdb, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	userRepo := user.NewRepo(gdb)
	vehicleRepo := vehicle.NewRepo(gdb)
	tripRepo := trip.NewRepo(gdb)
	reminderRepo := reminder.NewRepo(gdb)
	recommendRepo := recommend.NewRepo(gdb)

	srv := gateway.NewServer(cfg, log, gateway.Deps{
		Users:        user.NewService(userRepo),
		UserRepo:     userRepo,
		Vehicles:     vehicle.NewService(vehicleRepo),
		VehicleRepo:  vehicleRepo,
		Trips:        trip.NewService(tripRepo),
		TripRepo:     tripRepo,
		Reminders:    reminder.NewService(reminderRepo),
		ReminderRepo: reminderRepo,
		Recommends:   recommendRepo,
		Scheduler:    scheduler.NewService(vehicleRepo, reminderRepo, cfg.Scheduler, log),
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler: srv.Router(),
	}

	go func() {
		log.Infof("%s starting on %s", cfg.Server.Name, httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("received signal %v, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Warnf("http shutdown error: %v", err)
	} else {
		log.Info("http server stopped gracefully")
	}
}
