package reminder

import (
	"time"

	"github.com/phuchau23/CarS/internal/vehicle"
)

// Status trạng thái nhắc nhở (lưu dạng chuỗi).
type Status string

const (
	StatusPending      Status = "pending"      // mới tạo, chờ gửi
	StatusSent         Status = "sent"         // tầng thông báo đã gửi
	StatusAcknowledged Status = "acknowledged" // người dùng đã xác nhận
	StatusCompleted    Status = "completed"    // đã bảo dưỡng xong (trạng thái cuối)
	StatusDismissed    Status = "dismissed"    // người dùng bỏ qua (trạng thái cuối)
)

// IsTerminal trạng thái cuối: không cho phép chuyển tiếp nữa.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDismissed
}

// Reminder GORM model của bảng reminders.
// Reminder không bao giờ bị xoá ngầm: dismiss/complete là trạng thái,
// không phải thao tác xoá (trừ cascade khi xoá xe).
type Reminder struct {
	ID        string                  `gorm:"primaryKey;size:36"`
	VehicleID string                  `gorm:"index;size:36;not null"`
	Kind      vehicle.MaintenanceKind `gorm:"type:varchar(16);index;not null"`
	DueDate   time.Time               `gorm:"not null"`
	Status    Status                  `gorm:"type:varchar(16);index;not null"`
	Message   string                  `gorm:"size:255"`

	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
	SentAt         *time.Time // thời điểm gửi thông báo
	AcknowledgedAt *time.Time // thời điểm người dùng xác nhận
	CompletedAt    *time.Time // thời điểm hoàn thành
}
