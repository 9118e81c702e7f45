package reminder

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, rm *Reminder) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(rm).Error
}

func (r *Repo) Update(ctx context.Context, rm *Reminder) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(rm).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Reminder, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rm Reminder
	if err := db.Where("id = ?", id).First(&rm).Error; err != nil {
		return nil, err
	}
	return &rm, nil
}

// ListByVehicle toàn bộ reminder của một xe (phục vụ dedup + hiển thị).
func (r *Repo) ListByVehicle(ctx context.Context, vehicleID string) ([]Reminder, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var out []Reminder
	if err := db.Where("vehicle_id = ?", vehicleID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List lọc theo status ("" = tất cả) + phân trang.
func (r *Repo) List(ctx context.Context, status Status, offset, limit int) ([]Reminder, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := db.Model(&Reminder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Reminder
	if err := q.Order("due_date ASC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DeleteByVehicle xoá reminder theo xe (chỉ dùng khi cascade xoá xe).
func (r *Repo) DeleteByVehicle(ctx context.Context, vehicleID string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Where("vehicle_id = ?", vehicleID).Delete(&Reminder{}).Error
}
