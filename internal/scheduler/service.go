package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phuchau23/CarS/internal/common/config"
	"github.com/phuchau23/CarS/internal/common/logger"
	"github.com/phuchau23/CarS/internal/common/middleware"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// Notifier tầng gửi thông báo (push/SMS...) — nằm ngoài engine.
// Bản mặc định chỉ log, việc fan-out thật do hệ thống khác đảm nhận.
type Notifier interface {
	Notify(ctx context.Context, rm *reminder.Reminder) error
}

type logNotifier struct {
	log logger.Logger
}

func (n logNotifier) Notify(_ context.Context, rm *reminder.Reminder) error {
	if n.log != nil {
		n.log.WithFields(map[string]interface{}{
			"reminder_id": rm.ID,
			"vehicle_id":  rm.VehicleID,
			"kind":        string(rm.Kind),
			"due_date":    rm.DueDate.Format("2006-01-02"),
		}).Info("reminder notification dispatched")
	}
	return nil
}

// Service chạy vòng quét nhắc nhở định kỳ trên store thật.
// Mutex đảm bảo các vòng quét tuần tự: check-then-create không atomic.
type Service struct {
	vehicles  *vehicle.Repo
	reminders *reminder.Repo
	creator   *reminder.Service
	notifier  Notifier
	breaker   *middleware.CircuitBreaker
	cfg       config.SchedulerConfig
	log       logger.Logger

	mu sync.Mutex
}

func NewService(vehicles *vehicle.Repo, reminders *reminder.Repo, cfg config.SchedulerConfig, log logger.Logger) *Service {
	return &Service{
		vehicles:  vehicles,
		reminders: reminders,
		creator:   reminder.NewService(reminders),
		notifier:  logNotifier{log: log},
		breaker:   middleware.NewCircuitBreaker("notifier", 5, 30*time.Second),
		cfg:       cfg,
		log:       log,
	}
}

// WithNotifier thay tầng gửi thông báo (mặc định chỉ log).
func (s *Service) WithNotifier(n Notifier) *Service {
	if s != nil && n != nil {
		s.notifier = n
	}
	return s
}

// RunOnce chạy một vòng quét: quét đội xe tạo reminder, sau đó
// đẩy các reminder pending sang sent qua tầng thông báo.
func (s *Service) RunOnce(ctx context.Context) (CycleResult, error) {
	if s == nil || s.vehicles == nil || s.reminders == nil {
		return CycleResult{}, fmt.Errorf("service not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fleet, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return CycleResult{}, fmt.Errorf("list vehicles: %w", err)
	}

	result := RunCycle(ctx, fleet,
		func(ctx context.Context, vehicleID string) ([]reminder.Reminder, error) {
			return s.reminders.ListByVehicle(ctx, vehicleID)
		},
		func(ctx context.Context, in reminder.CreateInput) (*reminder.Reminder, error) {
			return s.creator.Create(ctx, in)
		},
		Options{
			Thresholds: s.cfg.Thresholds,
			Estimator:  ConstantRate{KmPerDay: s.cfg.DailyUsageKm},
		},
	)

	if s.log != nil {
		s.log.WithFields(map[string]interface{}{
			"vehicles":  len(fleet),
			"created":   len(result.Created),
			"failures":  len(result.Failures),
			"anomalies": len(result.Anomalies),
		}).Info("maintenance cycle finished")
		for _, f := range result.Failures {
			s.log.Warnf("maintenance cycle: %v", f)
		}
		for _, a := range result.Anomalies {
			s.log.Warnf("odometer anomaly: %v", a)
		}
	}

	s.dispatchPending(ctx)

	return result, nil
}

const dispatchPageSize = 200

// drainPending gửi lần lượt các reminder pending theo trang. Offset
// luôn là 0 vì reminder gửi xong rời khỏi trạng thái pending; dừng
// khi hết pending hoặc khi cả một trang không gửi được reminder nào
// (tầng thông báo đang lỗi) để không lặp vô hạn.
func drainPending(ctx context.Context,
	fetch func(ctx context.Context, offset, limit int) ([]reminder.Reminder, error),
	send func(ctx context.Context, rm *reminder.Reminder) error,
) (sent int, errs []error) {
	for {
		page, err := fetch(ctx, 0, dispatchPageSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("list pending reminders: %w", err))
			return sent, errs
		}
		if len(page) == 0 {
			return sent, errs
		}

		sentThisPage := 0
		for i := range page {
			rm := &page[i]
			if err := send(ctx, rm); err != nil {
				errs = append(errs, fmt.Errorf("reminder %s: %w", rm.ID, err))
				continue
			}
			sentThisPage++
			sent++
		}

		if sentThisPage == 0 || len(page) < dispatchPageSize {
			return sent, errs
		}
	}
}

// dispatchPending gửi thông báo cho các reminder pending và chuyển
// trạng thái sang sent. Lỗi gửi chỉ log; circuit breaker chặn việc
// dồn dập gọi tầng thông báo khi nó đang lỗi.
func (s *Service) dispatchPending(ctx context.Context) {
	now := time.Now()
	_, errs := drainPending(ctx,
		func(ctx context.Context, offset, limit int) ([]reminder.Reminder, error) {
			page, _, err := s.reminders.List(ctx, reminder.StatusPending, offset, limit)
			return page, err
		},
		func(ctx context.Context, rm *reminder.Reminder) error {
			if err := s.breaker.Call(ctx, func() error {
				return s.notifier.Notify(ctx, rm)
			}); err != nil {
				return fmt.Errorf("notify: %w", err)
			}
			// Chưa đánh dấu sent được thì coi như chưa gửi để không
			// tính vào tiến độ của trang.
			if _, err := s.creator.UpdateStatus(ctx, rm.ID, reminder.StatusSent, now); err != nil {
				return fmt.Errorf("mark sent: %w", err)
			}
			return nil
		},
	)
	if s.log != nil {
		for _, err := range errs {
			s.log.Warnf("dispatch pending: %v", err)
		}
	}
}

// Run chạy vòng quét theo chu kỳ cho tới khi ctx bị huỷ.
func (s *Service) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}

	// Quét ngay một lần lúc khởi động.
	if _, err := s.RunOnce(ctx); err != nil && s.log != nil {
		s.log.Errorf("maintenance cycle failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil && s.log != nil {
				s.log.Errorf("maintenance cycle failed: %v", err)
			}
		}
	}
}
