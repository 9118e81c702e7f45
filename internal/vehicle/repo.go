package vehicle

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

func (r *Repo) Create(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(v).Error
}

func (r *Repo) Update(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(v).Error
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var v Vehicle
	if err := db.Preload("Schedule").Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// List lọc theo owner_id (rỗng = toàn bộ đội xe) + phân trang.
func (r *Repo) List(ctx context.Context, ownerID string, offset, limit int) ([]Vehicle, int64, error) {
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

	q := db.Model(&Vehicle{})
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var vehicles []Vehicle
	if err := q.Preload("Schedule").Order("created_at DESC").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ListAll toàn bộ xe kèm lịch bảo dưỡng (cho vòng quét nhắc nhở).
func (r *Repo) ListAll(ctx context.Context) ([]Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var vehicles []Vehicle
	if err := db.Preload("Schedule").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdateMileage cập nhật số km hiện tại.
func (r *Repo) UpdateMileage(ctx context.Context, id string, mileage int) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Model(&Vehicle{}).Where("id = ?", id).Update("mileage", mileage).Error
}

// UpsertScheduleItem tạo/cập nhật một mục lịch bảo dưỡng theo (vehicle_id, kind).
func (r *Repo) UpsertScheduleItem(ctx context.Context, item *MaintenanceItem) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	var existing MaintenanceItem
	err := db.Where("vehicle_id = ? AND kind = ?", item.VehicleID, item.Kind).First(&existing).Error
	if err == nil {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		return db.Save(item).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(item).Error
}

// Delete xoá xe và toàn bộ lịch bảo dưỡng của nó.
// Các bản ghi phụ thuộc (trips/reminders) do tầng trên xoá trước.
func (r *Repo) Delete(ctx context.Context, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&MaintenanceItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Vehicle{}).Error
	})
}
