package maintenance

import (
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// ShouldCreateReminder quyết định có tạo reminder mới cho loại kind không.
// Trả về false nếu xe đang có reminder cùng loại chưa kết thúc
// (pending/sent/acknowledged): một chu kỳ bảo dưỡng chỉ có một reminder mở.
// Khi mọi reminder cùng loại đã completed/dismissed thì chu kỳ mới được
// phép tạo reminder mới.
func ShouldCreateReminder(existing []reminder.Reminder, kind vehicle.MaintenanceKind) bool {
	for i := range existing {
		if existing[i].Kind != kind {
			continue
		}
		if !existing[i].Status.IsTerminal() {
			return false
		}
	}
	return true
}
