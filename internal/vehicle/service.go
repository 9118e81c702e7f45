package vehicle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service gói các use case của domain xe (không phụ thuộc HTTP/gRPC),
// để tái sử dụng và test.
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// RegisterVehicleInput tham số đăng ký xe mới.
type RegisterVehicleInput struct {
	OwnerID      string
	Brand        string
	Make         string
	Model        string
	Year         int
	VehicleType  Type
	LicensePlate string
	Color        string
	EngineSize   string
	Mileage      int

	// Lịch bảo dưỡng khai báo lúc đăng ký (có thể rỗng).
	Schedule []ScheduleInput
}

// ScheduleInput một mục lịch bảo dưỡng trong input.
type ScheduleInput struct {
	Kind            MaintenanceKind
	IntervalKm      int
	LastServiceKm   int
	LastServiceDate time.Time
}

func (s *Service) RegisterVehicle(ctx context.Context, in RegisterVehicleInput) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("owner_id required")
	}
	if strings.TrimSpace(in.Make) == "" {
		return nil, fmt.Errorf("make required")
	}
	if in.Mileage < 0 {
		return nil, fmt.Errorf("mileage must be >= 0")
	}

	v := &Vehicle{
		ID:           uuid.NewString(),
		OwnerID:      strings.TrimSpace(in.OwnerID),
		Brand:        strings.TrimSpace(in.Brand),
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		Year:         in.Year,
		VehicleType:  in.VehicleType,
		LicensePlate: strings.TrimSpace(in.LicensePlate),
		Color:        strings.TrimSpace(in.Color),
		EngineSize:   strings.TrimSpace(in.EngineSize),
		Mileage:      in.Mileage,
	}
	for _, it := range in.Schedule {
		if it.IntervalKm <= 0 {
			return nil, fmt.Errorf("schedule %s: interval_km must be > 0", it.Kind)
		}
		v.Schedule = append(v.Schedule, MaintenanceItem{
			ID:              uuid.NewString(),
			VehicleID:       v.ID,
			Kind:            it.Kind,
			IntervalKm:      it.IntervalKm,
			LastServiceKm:   it.LastServiceKm,
			LastServiceDate: it.LastServiceDate,
		})
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateOdometer kiểm tra số km mới: không âm và không được
// nhỏ hơn số km hiện tại (đồng hồ không chạy lùi).
func ValidateOdometer(current, next int) error {
	if next < 0 {
		return fmt.Errorf("mileage must be >= 0")
	}
	if next < current {
		return fmt.Errorf("mileage %d is below current odometer %d", next, current)
	}
	return nil
}

// UpdateOdometer ghi nhận số km mới trên đồng hồ.
func (s *Service) UpdateOdometer(ctx context.Context, vehicleID string, mileage int) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("vehicle_id required")
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := ValidateOdometer(v.Mileage, mileage); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMileage(ctx, vehicleID, mileage); err != nil {
		return nil, err
	}
	v.Mileage = mileage
	return v, nil
}

// RecordService ghi nhận đã bảo dưỡng loại kind: mốc lần gần nhất
// được dời về số km hiện tại của xe và thời điểm now.
func (s *Service) RecordService(ctx context.Context, vehicleID string, kind MaintenanceKind, intervalKm int, now time.Time) (*MaintenanceItem, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("vehicle_id required")
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	item := v.ScheduleItem(kind)
	if item == nil {
		if intervalKm <= 0 {
			return nil, fmt.Errorf("schedule %s: interval_km must be > 0", kind)
		}
		item = &MaintenanceItem{
			ID:         uuid.NewString(),
			VehicleID:  v.ID,
			Kind:       kind,
			IntervalKm: intervalKm,
		}
	} else if intervalKm > 0 {
		item.IntervalKm = intervalKm
	}

	item.LastServiceKm = v.Mileage
	item.LastServiceDate = now

	if err := s.repo.UpsertScheduleItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
