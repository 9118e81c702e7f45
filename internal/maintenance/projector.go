package maintenance

import (
	"fmt"

	"github.com/phuchau23/CarS/internal/vehicle"
)

// Classification kết quả phân loại một mục bảo dưỡng.
type Classification string

const (
	ClassOK      Classification = "ok"
	ClassDueSoon Classification = "due_soon"
	ClassOverdue Classification = "overdue"
)

// InvalidScheduleError lịch bảo dưỡng không hợp lệ (interval <= 0).
// Chỉ cục bộ cho một loại bảo dưỡng; caller bỏ qua loại đó và tiếp tục.
type InvalidScheduleError struct {
	Kind       vehicle.MaintenanceKind
	IntervalKm int
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid maintenance schedule %s: interval_km=%d (must be > 0)", e.Kind, e.IntervalKm)
}

// Projection kết quả chiếu trạng thái bảo dưỡng từ số km hiện tại.
// DataAnomaly = true khi mốc lần bảo dưỡng gần nhất lớn hơn số km
// hiện tại (dữ liệu lệch, không phải lỗi): khi đó quãng đường đã đi
// được coi là 0 để tránh báo "quá hạn" sai.
type Projection struct {
	Kind                 vehicle.MaintenanceKind
	DistanceSinceService int
	RemainingKm          int
	PercentElapsed       float64
	Classification       Classification
	DataAnomaly          bool
}

// Ngưỡng "sắp đến hạn" mặc định theo loại bảo dưỡng (km).
var defaultDueSoonThresholds = map[vehicle.MaintenanceKind]int{
	vehicle.KindOil:        500,
	vehicle.KindCoolant:    2000,
	vehicle.KindBrakes:     500,
	vehicle.KindTires:      1000,
	vehicle.KindInspection: 1000,
}

const fallbackDueSoonThreshold = 500

// DueSoonThreshold ngưỡng "sắp đến hạn" cho một loại bảo dưỡng.
// overrides (từ config) được ưu tiên hơn mặc định.
func DueSoonThreshold(kind vehicle.MaintenanceKind, overrides map[string]int) int {
	if overrides != nil {
		if v, ok := overrides[string(kind)]; ok && v > 0 {
			return v
		}
	}
	if v, ok := defaultDueSoonThresholds[kind]; ok {
		return v
	}
	return fallbackDueSoonThreshold
}

// Project tính projection cho một mục bảo dưỡng từ số km hiện tại.
// Hàm thuần, không side effect, gọi bao nhiêu lần cũng được.
func Project(currentKm int, item vehicle.MaintenanceItem, thresholds map[string]int) (Projection, error) {
	if item.IntervalKm <= 0 {
		return Projection{}, &InvalidScheduleError{Kind: item.Kind, IntervalKm: item.IntervalKm}
	}

	p := Projection{Kind: item.Kind}

	distance := currentKm - item.LastServiceKm
	if distance < 0 {
		// Mốc bảo dưỡng lớn hơn odometer hiện tại: dữ liệu lệch.
		distance = 0
		p.DataAnomaly = true
	}
	p.DistanceSinceService = distance
	p.RemainingKm = item.IntervalKm - distance

	percent := float64(distance) / float64(item.IntervalKm) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.PercentElapsed = percent

	threshold := DueSoonThreshold(item.Kind, thresholds)
	switch {
	case p.RemainingKm <= 0:
		p.Classification = ClassOverdue
	case p.RemainingKm <= threshold:
		p.Classification = ClassDueSoon
	default:
		p.Classification = ClassOK
	}

	return p, nil
}
