package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// Service quản lý vòng đời reminder: tạo mới ở trạng thái pending,
// mọi thay đổi trạng thái đều đi qua state machine.
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateInput tham số tạo reminder mới.
type CreateInput struct {
	VehicleID string
	Kind      vehicle.MaintenanceKind
	DueDate   time.Time
	Message   string
}

// Create tạo reminder mới ở trạng thái pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Reminder, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if strings.TrimSpace(in.VehicleID) == "" {
		return nil, fmt.Errorf("vehicle_id required")
	}
	if in.Kind == "" {
		return nil, fmt.Errorf("kind required")
	}
	if in.DueDate.IsZero() {
		return nil, fmt.Errorf("due_date required")
	}

	rm := &Reminder{
		ID:        uuid.NewString(),
		VehicleID: strings.TrimSpace(in.VehicleID),
		Kind:      in.Kind,
		DueDate:   in.DueDate,
		Status:    StatusPending,
		Message:   strings.TrimSpace(in.Message),
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// UpdateStatus chuyển trạng thái theo state machine rồi lưu lại.
func (s *Service) UpdateStatus(ctx context.Context, reminderID string, to Status, now time.Time) (*Reminder, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	reminderID = strings.TrimSpace(reminderID)
	if reminderID == "" {
		return nil, fmt.Errorf("reminder_id required")
	}
	if to == "" {
		return nil, fmt.Errorf("target status required")
	}

	rm, err := s.repo.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	if err := ApplyTransition(rm, to, now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}
