package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/phuchau23/CarS/internal/common/config"
	"github.com/phuchau23/CarS/internal/common/db"
	"github.com/phuchau23/CarS/internal/common/logger"
	"github.com/phuchau23/CarS/internal/common/server"
	"github.com/phuchau23/CarS/internal/common/tracing"
	"github.com/phuchau23/CarS/internal/recommend"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/scheduler"
	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/user"
	"github.com/phuchau23/CarS/internal/vehicle"
	"google.golang.org/grpc"
)

var (
	configPath = flag.String("config", "configs/fleet-service.json", "đường dẫn file cấu hình")
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

	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

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

	if err := gdb.AutoMigrate(
		&user.User{},
		&vehicle.Vehicle{},
		&vehicle.MaintenanceItem{},
		&trip.Trip{},
		&reminder.Reminder{},
		&recommend.Recommendation{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	vehicleRepo := vehicle.NewRepo(gdb)
	reminderRepo := reminder.NewRepo(gdb)

	// Vòng quét nhắc nhở chạy nền, dừng khi process thoát.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewService(vehicleRepo, reminderRepo, cfg.Scheduler, log)
	go sched.Run(ctx)

	if err := server.RunGRPCServer(cfg, log, func(s *grpc.Server) error {
		// Hiện chỉ phục vụ health check cho Consul; API nghiệp vụ
		// đi qua api-gateway (HTTP).
		return nil
	}); err != nil {
		log.Fatalf("fleet-service exited with error: %v", err)
	}
}
