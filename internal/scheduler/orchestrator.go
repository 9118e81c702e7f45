package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/phuchau23/CarS/internal/maintenance"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// ReminderLookupFunc đọc toàn bộ reminder của một xe từ store.
type ReminderLookupFunc func(ctx context.Context, vehicleID string) ([]reminder.Reminder, error)

// CreateReminderFunc ghi reminder mới (trạng thái pending) vào store.
type CreateReminderFunc func(ctx context.Context, in reminder.CreateInput) (*reminder.Reminder, error)

// CycleError lỗi cục bộ của một mục bảo dưỡng trong vòng quét.
// Không làm dừng vòng quét: các xe/mục còn lại vẫn được xử lý.
type CycleError struct {
	VehicleID string
	Kind      vehicle.MaintenanceKind
	Err       error
}

func (e CycleError) Error() string {
	return fmt.Sprintf("vehicle=%s kind=%s: %v", e.VehicleID, e.Kind, e.Err)
}

// CycleResult kết quả một vòng quét.
type CycleResult struct {
	Created   []reminder.Reminder // reminder mới tạo trong vòng này
	Failures  []CycleError        // lỗi lịch bảo dưỡng, lỗi store...
	Anomalies []CycleError        // dữ liệu odometer lệch (cảnh báo, không chặn)
}

// Options tham số của một vòng quét.
type Options struct {
	Thresholds map[string]int // ngưỡng "sắp đến hạn" theo loại (km), nil = mặc định
	Estimator  UsageEstimator // nil = ConstantRate mặc định
	Now        time.Time      // zero = time.Now()
}

// RunCycle quét toàn bộ đội xe: chiếu từng mục bảo dưỡng, mục nào
// sắp đến hạn / quá hạn và chưa có reminder mở cùng loại thì tạo
// reminder mới qua createReminder.
//
// Gọi lặp lại khi state không đổi sẽ không tạo reminder trùng (nhờ
// dedup), nhưng due date phụ thuộc "now" tại thời điểm gọi. Các vòng
// quét phải chạy tuần tự: check-then-create không atomic nên hai vòng
// chạy song song trên cùng một xe có thể tạo trùng.
func RunCycle(ctx context.Context, vehicles []vehicle.Vehicle, lookup ReminderLookupFunc, create CreateReminderFunc, opts Options) CycleResult {
	var result CycleResult

	if lookup == nil || create == nil {
		result.Failures = append(result.Failures, CycleError{
			Err: fmt.Errorf("lookup/create callbacks required"),
		})
		return result
	}

	est := opts.Estimator
	if est == nil {
		est = ConstantRate{}
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	for i := range vehicles {
		v := &vehicles[i]

		var existing []reminder.Reminder
		var lookedUp bool

		for _, item := range v.Schedule {
			p, err := maintenance.Project(v.Mileage, item, opts.Thresholds)
			if err != nil {
				result.Failures = append(result.Failures, CycleError{
					VehicleID: v.ID, Kind: item.Kind, Err: err,
				})
				continue
			}
			if p.DataAnomaly {
				result.Anomalies = append(result.Anomalies, CycleError{
					VehicleID: v.ID, Kind: item.Kind,
					Err: fmt.Errorf("last_service_km=%d > mileage=%d", item.LastServiceKm, v.Mileage),
				})
			}
			if p.Classification == maintenance.ClassOK {
				continue
			}

			// Chỉ đọc danh sách reminder khi thực sự cần dedup.
			if !lookedUp {
				existing, err = lookup(ctx, v.ID)
				if err != nil {
					result.Failures = append(result.Failures, CycleError{
						VehicleID: v.ID, Kind: item.Kind, Err: err,
					})
					continue
				}
				lookedUp = true
			}

			if !maintenance.ShouldCreateReminder(existing, item.Kind) {
				continue
			}

			dueDate := now.AddDate(0, 0, est.DaysUntil(p.RemainingKm))
			created, err := create(ctx, reminder.CreateInput{
				VehicleID: v.ID,
				Kind:      item.Kind,
				DueDate:   dueDate,
				Message:   buildMessage(v, p),
			})
			if err != nil {
				result.Failures = append(result.Failures, CycleError{
					VehicleID: v.ID, Kind: item.Kind, Err: err,
				})
				continue
			}
			result.Created = append(result.Created, *created)
			// Reminder vừa tạo cũng chặn các mục trùng loại ngay trong vòng này.
			existing = append(existing, *created)
		}
	}

	return result
}

// Tên hành động theo loại bảo dưỡng (dùng trong message).
var kindActions = map[vehicle.MaintenanceKind]string{
	vehicle.KindOil:        "thay dầu",
	vehicle.KindCoolant:    "thay nước làm mát",
	vehicle.KindBrakes:     "kiểm tra phanh",
	vehicle.KindTires:      "thay lốp",
	vehicle.KindInspection: "kiểm tra định kỳ",
}

func buildMessage(v *vehicle.Vehicle, p maintenance.Projection) string {
	action, ok := kindActions[p.Kind]
	if !ok {
		action = "bảo dưỡng"
	}
	if p.Classification == maintenance.ClassOverdue {
		return fmt.Sprintf("Đã quá hạn %s cho %s (quá %dkm)", action, v.Label(), -p.RemainingKm)
	}
	return fmt.Sprintf("Sắp đến lịch %s cho %s (còn %dkm)", action, v.Label(), p.RemainingKm)
}
