package recommend

import (
	"time"

	"github.com/phuchau23/CarS/internal/vehicle"
)

// Recommendation gợi ý dầu nhớt cho một xe (GORM model).
type Recommendation struct {
	ID          string `gorm:"primaryKey;size:36"`
	VehicleID   string `gorm:"index;size:36;not null"`
	ProductName string `gorm:"size:128"`
	ProductType string `gorm:"size:64"`
	Viscosity   string `gorm:"size:16"`
	Brand       string `gorm:"size:64"`
	Price       int64  `gorm:"not null;default:0"` // VNĐ
	Reason      string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Product một sản phẩm dầu nhớt trong bảng rule.
type Product struct {
	ProductName string `json:"product_name"`
	ProductType string `json:"product_type"`
	Viscosity   string `json:"viscosity"`
	Brand       string `json:"brand"`
	Price       int64  `json:"price"`
	Reason      string `json:"reason"`
}

// Lubricant chọn dầu nhớt theo rule: loại xe + tuổi xe.
// Xe hai bánh và ô tô dùng hai bảng giá khác nhau.
func Lubricant(v *vehicle.Vehicle, now time.Time) Product {
	age := now.Year() - v.Year

	if v.VehicleType == vehicle.TypeMotorbike || v.VehicleType == vehicle.TypeScooter {
		switch {
		case age <= 2:
			return Product{
				ProductName: "Castrol Power1 4T 10W-40",
				ProductType: "Synthetic Blend",
				Viscosity:   "10W-40",
				Brand:       "Castrol",
				Price:       180000,
				Reason:      "Xe mới, nên dùng dầu tổng hợp cao cấp để bảo vệ động cơ tốt nhất",
			}
		case age <= 5:
			return Product{
				ProductName: "Motul 5100 4T 10W-40",
				ProductType: "Semi-Synthetic",
				Viscosity:   "10W-40",
				Brand:       "Motul",
				Price:       150000,
				Reason:      "Xe từ 2-5 năm, dầu bán tổng hợp phù hợp và tiết kiệm",
			}
		default:
			return Product{
				ProductName: "Shell Advance AX7 10W-40",
				ProductType: "Mineral",
				Viscosity:   "10W-40",
				Brand:       "Shell",
				Price:       120000,
				Reason:      "Xe trên 5 năm, dầu khoáng chất lượng tốt, giá hợp lý",
			}
		}
	}

	switch {
	case age <= 3:
		return Product{
			ProductName: "Castrol Edge 5W-30",
			ProductType: "Full Synthetic",
			Viscosity:   "5W-30",
			Brand:       "Castrol",
			Price:       450000,
			Reason:      "Xe ô tô mới, dầu tổng hợp hoàn toàn bảo vệ động cơ tối ưu",
		}
	case age <= 7:
		return Product{
			ProductName: "Shell Helix HX7 10W-40",
			ProductType: "Semi-Synthetic",
			Viscosity:   "10W-40",
			Brand:       "Shell",
			Price:       350000,
			Reason:      "Xe từ 3-7 năm, dầu bán tổng hợp cân bằng giữa chất lượng và giá",
		}
	default:
		return Product{
			ProductName: "Caltex Havoline 15W-40",
			ProductType: "Mineral",
			Viscosity:   "15W-40",
			Brand:       "Caltex",
			Price:       280000,
			Reason:      "Xe trên 7 năm, dầu khoáng phù hợp với động cơ đã qua sử dụng",
		}
	}
}
