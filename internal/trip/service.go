package trip

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// RecordInput tham số ghi nhận một khoản chi.
type RecordInput struct {
	VehicleID   string
	DriverID    string
	Type        Type
	Amount      int64
	Description string
	ReceiptURL  string
}

// Record ghi nhận khoản chi mới. Có biên lai thì chạy trích xuất
// (giả lập) và lưu kèm kết quả. Bản ghi bất biến sau khi tạo.
func (s *Service) Record(ctx context.Context, in RecordInput, now time.Time) (*Trip, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if strings.TrimSpace(in.VehicleID) == "" {
		return nil, fmt.Errorf("vehicle_id required")
	}
	if in.Type == "" {
		return nil, fmt.Errorf("type required")
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("amount must be >= 0")
	}

	t := &Trip{
		ID:          uuid.NewString(),
		VehicleID:   strings.TrimSpace(in.VehicleID),
		DriverID:    strings.TrimSpace(in.DriverID),
		Type:        in.Type,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		ReceiptURL:  strings.TrimSpace(in.ReceiptURL),
	}
	if t.ReceiptURL != "" {
		t.OCRParsed = SimulateOCR(t.ReceiptURL, now)
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Trip, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, f)
}
