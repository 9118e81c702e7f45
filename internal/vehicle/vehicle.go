package vehicle

import (
	"time"
)

// Type loại phương tiện được hỗ trợ.
type Type string

const (
	TypeMotorbike Type = "motorbike"
	TypeCar       Type = "car"
	TypeTruck     Type = "truck"
	TypeVan       Type = "van"
	TypeScooter   Type = "scooter"
)

// MaintenanceKind loại bảo dưỡng. Dùng chung cho lịch bảo dưỡng,
// projection và reminder (một enum đóng, định nghĩa một nơi duy nhất).
type MaintenanceKind string

const (
	KindOil        MaintenanceKind = "oil"
	KindCoolant    MaintenanceKind = "coolant"
	KindBrakes     MaintenanceKind = "brakes"
	KindTires      MaintenanceKind = "tires"
	KindInspection MaintenanceKind = "inspection"
)

// MaintenanceItem một mục trong lịch bảo dưỡng của xe:
// chu kỳ theo km và mốc lần bảo dưỡng gần nhất.
// Ràng buộc: IntervalKm > 0; LastServiceKm <= số km hiện tại của xe.
type MaintenanceItem struct {
	ID              string          `gorm:"primaryKey;size:36"`
	VehicleID       string          `gorm:"uniqueIndex:idx_vehicle_kind;size:36;not null"`
	Kind            MaintenanceKind `gorm:"uniqueIndex:idx_vehicle_kind;type:varchar(16);not null"`
	IntervalKm      int             `gorm:"not null"`
	LastServiceKm   int             `gorm:"not null;default:0"`
	LastServiceDate time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// Vehicle GORM model của bảng vehicles.
type Vehicle struct {
	ID           string `gorm:"primaryKey;size:36"`
	OwnerID      string `gorm:"index;size:36"`
	Brand        string `gorm:"size:64"`
	Make         string `gorm:"size:64"`
	Model        string `gorm:"size:64"`
	Year         int    `gorm:"not null;default:0"`
	VehicleType  Type   `gorm:"type:varchar(16);not null"`
	LicensePlate string `gorm:"uniqueIndex;size:32"`
	Color        string `gorm:"size:32"`
	Photo        string `gorm:"size:255"`
	EngineSize   string `gorm:"size:32"`

	// Số km hiện tại trên đồng hồ (odometer).
	Mileage int `gorm:"not null;default:0"`

	Schedule []MaintenanceItem `gorm:"foreignKey:VehicleID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ScheduleItem trả về mục bảo dưỡng theo loại (nil nếu xe không khai báo).
func (v *Vehicle) ScheduleItem(kind MaintenanceKind) *MaintenanceItem {
	if v == nil {
		return nil
	}
	for i := range v.Schedule {
		if v.Schedule[i].Kind == kind {
			return &v.Schedule[i]
		}
	}
	return nil
}

// Label tên hiển thị của xe, ví dụ "Honda Wave Alpha".
func (v *Vehicle) Label() string {
	if v == nil {
		return "N/A"
	}
	if v.Make == "" && v.Model == "" {
		return "N/A"
	}
	if v.Model == "" {
		return v.Make
	}
	return v.Make + " " + v.Model
}
