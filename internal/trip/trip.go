package trip

import (
	"time"
)

// Type loại chi phí / chuyến đi.
type Type string

const (
	TypeMaintenance Type = "maintenance"
	TypeFuel        Type = "fuel"
	TypeRepair      Type = "repair"
	TypeOther       Type = "other"
)

// OCRItem một dòng trên hoá đơn được trích xuất.
type OCRItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OCRData dữ liệu hoá đơn đã trích xuất từ ảnh biên lai.
type OCRData struct {
	Vendor string    `json:"vendor,omitempty"`
	Date   string    `json:"date,omitempty"`
	Items  []OCRItem `json:"items,omitempty"`
	Total  int64     `json:"total,omitempty"`
}

// Trip ghi nhận một chuyến đi / khoản chi của xe.
// Bất biến sau khi tạo: không có thao tác update/delete
// (trừ cascade khi xoá xe).
type Trip struct {
	ID          string `gorm:"primaryKey;size:36"`
	VehicleID   string `gorm:"index;size:36;not null"`
	DriverID    string `gorm:"index;size:36"`
	Type        Type   `gorm:"type:varchar(16);index;not null"`
	Amount      int64  `gorm:"not null;default:0"` // đơn vị: VNĐ
	Description string `gorm:"size:255"`

	ReceiptURL string   `gorm:"size:255"`
	OCRParsed  *OCRData `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
