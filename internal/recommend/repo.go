package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuchau23/CarS/internal/vehicle"
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

// RecordFor sinh gợi ý cho xe, lưu lại và trả về bản ghi.
func (r *Repo) RecordFor(ctx context.Context, v *vehicle.Vehicle, now time.Time) (*Recommendation, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	if v == nil {
		return nil, fmt.Errorf("vehicle is nil")
	}

	p := Lubricant(v, now)
	rec := &Recommendation{
		ID:          uuid.NewString(),
		VehicleID:   v.ID,
		ProductName: p.ProductName,
		ProductType: p.ProductType,
		Viscosity:   p.Viscosity,
		Brand:       p.Brand,
		Price:       p.Price,
		Reason:      p.Reason,
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repo) ListByVehicle(ctx context.Context, vehicleID string) ([]Recommendation, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var out []Recommendation
	if err := db.Where("vehicle_id = ?", vehicleID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByVehicle xoá gợi ý theo xe (cascade khi xoá xe).
func (r *Repo) DeleteByVehicle(ctx context.Context, vehicleID string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Where("vehicle_id = ?", vehicleID).Delete(&Recommendation{}).Error
}
