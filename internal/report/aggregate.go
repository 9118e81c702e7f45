package report

import (
	"fmt"
	"sort"

	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// MonthBucket tổng chi phí một tháng, tách theo loại.
// Month dạng "YYYY-MM".
type MonthBucket struct {
	Month       string `json:"month"`
	Maintenance int64  `json:"maintenance"`
	Fuel        int64  `json:"fuel"`
	Repair      int64  `json:"repair"`
	Other       int64  `json:"other"`
}

// Total tổng cả bốn loại trong tháng.
func (b MonthBucket) Total() int64 {
	return b.Maintenance + b.Fuel + b.Repair + b.Other
}

// MonthlyRollup gom chi phí theo tháng (dựa trên thời điểm tạo),
// mỗi loại một cột. Tháng không có chi phí thì không có bucket
// (sparse, không chèn tháng rỗng). Kết quả sắp tăng dần theo tháng
// và chỉ giữ monthsBack tháng gần nhất.
func MonthlyRollup(trips []trip.Trip, monthsBack int) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)
	for i := range trips {
		t := &trips[i]
		key := fmt.Sprintf("%04d-%02d", t.CreatedAt.Year(), int(t.CreatedAt.Month()))
		b, ok := byMonth[key]
		if !ok {
			b = &MonthBucket{Month: key}
			byMonth[key] = b
		}
		switch t.Type {
		case trip.TypeMaintenance:
			b.Maintenance += t.Amount
		case trip.TypeFuel:
			b.Fuel += t.Amount
		case trip.TypeRepair:
			b.Repair += t.Amount
		default:
			b.Other += t.Amount
		}
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	if monthsBack > 0 && len(out) > monthsBack {
		out = out[len(out)-monthsBack:]
	}
	return out
}

// VehicleCost tổng chi phí của một xe.
type VehicleCost struct {
	Vehicle     vehicle.Vehicle `json:"vehicle"`
	TotalAmount int64           `json:"total_amount"`
	TripCount   int             `json:"trip_count"`
}

// PerVehicleRanking tổng chi phí từng xe, sắp giảm dần theo tổng tiền.
// Xe chưa có chi phí vẫn xuất hiện với tổng 0. Sort ổn định: bằng
// tiền thì giữ thứ tự đầu vào.
func PerVehicleRanking(vehicles []vehicle.Vehicle, trips []trip.Trip) []VehicleCost {
	totals := make(map[string]*VehicleCost, len(vehicles))
	out := make([]VehicleCost, len(vehicles))
	for i := range vehicles {
		out[i] = VehicleCost{Vehicle: vehicles[i]}
		totals[vehicles[i].ID] = &out[i]
	}

	for i := range trips {
		vc, ok := totals[trips[i].VehicleID]
		if !ok {
			// Chi phí mồ côi (xe đã bị xoá) thì bỏ qua.
			continue
		}
		vc.TotalAmount += trips[i].Amount
		vc.TripCount++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalAmount > out[j].TotalAmount })
	return out
}
