package reminder

import (
	"fmt"
	"time"
)

// InvalidTransitionError chuyển trạng thái không hợp lệ.
// Caller chỉ cần bỏ qua mutation và báo lại cho người dùng.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reminder status transition: %s -> %s", e.From, e.To)
}

// AllowTransition đồ thị trạng thái của reminder.
// pending -> sent do tầng thông báo bên ngoài kích hoạt;
// acknowledge/dismiss/complete là thao tác của người dùng.
var AllowTransition = map[Status][]Status{
	StatusPending:      {StatusSent, StatusAcknowledged, StatusDismissed},
	StatusSent:         {StatusAcknowledged, StatusDismissed},
	StatusAcknowledged: {StatusCompleted},
	// Trạng thái cuối: completed / dismissed không chuyển tiếp nữa.
	StatusCompleted: {},
	StatusDismissed: {},
}

// CanTransition kiểm tra from -> to có hợp lệ không.
// Không cho phép "đứng yên" (from == to): mọi lần gọi đều phải là
// một bước chuyển thật trong đồ thị.
func CanTransition(from, to Status) bool {
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition áp dụng chuyển trạng thái và ghi nhận mốc thời gian.
// Nếu chuyển không hợp lệ thì trả về InvalidTransitionError và
// không thay đổi reminder.
func ApplyTransition(rm *Reminder, to Status, now time.Time) error {
	if rm == nil {
		return fmt.Errorf("reminder is nil")
	}
	from := rm.Status
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}

	rm.Status = to

	switch to {
	case StatusSent:
		if rm.SentAt == nil {
			t := now
			rm.SentAt = &t
		}
	case StatusAcknowledged:
		if rm.AcknowledgedAt == nil {
			t := now
			rm.AcknowledgedAt = &t
		}
	case StatusCompleted:
		if rm.CompletedAt == nil {
			t := now
			rm.CompletedAt = &t
		}
	}
	return nil
}
