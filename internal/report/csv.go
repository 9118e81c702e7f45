package report

import (
	"strconv"
	"strings"

	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// UTF8BOM thêm vào đầu file CSV để Excel đọc đúng tiếng Việt.
const UTF8BOM = "\uFEFF"

const dateLayout = "02/01/2006"

// Bảng nhãn tiếng Việt cho các enum (tập đóng, không cấu hình runtime).
var (
	tripTypeLabels = map[trip.Type]string{
		trip.TypeMaintenance: "Bảo dưỡng",
		trip.TypeFuel:        "Nhiên liệu",
		trip.TypeRepair:      "Sửa chữa",
		trip.TypeOther:       "Khác",
	}
	vehicleTypeLabels = map[vehicle.Type]string{
		vehicle.TypeMotorbike: "Xe máy",
		vehicle.TypeCar:       "Ô tô",
		vehicle.TypeTruck:     "Xe tải",
		vehicle.TypeVan:       "Xe van",
		vehicle.TypeScooter:   "Xe tay ga",
	}
	reminderKindLabels = map[vehicle.MaintenanceKind]string{
		vehicle.KindOil:        "Thay dầu",
		vehicle.KindCoolant:    "Nước làm mát",
		vehicle.KindBrakes:     "Phanh",
		vehicle.KindTires:      "Lốp xe",
		vehicle.KindInspection: "Kiểm tra",
	}
	reminderStatusLabels = map[reminder.Status]string{
		reminder.StatusPending:      "Chờ",
		reminder.StatusSent:         "Đã gửi",
		reminder.StatusAcknowledged: "Đã xác nhận",
		reminder.StatusCompleted:    "Hoàn thành",
		reminder.StatusDismissed:    "Đã bỏ qua",
	}
)

func label[K comparable](m map[K]string, k K) string {
	if v, ok := m[k]; ok {
		return v
	}
	return "Khác"
}

// writeRow ghi một dòng CSV, mọi ô đều bọc trong dấu nháy kép.
func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func vehicleIndex(vehicles []vehicle.Vehicle) map[string]*vehicle.Vehicle {
	idx := make(map[string]*vehicle.Vehicle, len(vehicles))
	for i := range vehicles {
		idx[vehicles[i].ID] = &vehicles[i]
	}
	return idx
}

func plateOrNA(v *vehicle.Vehicle) string {
	if v == nil || v.LicensePlate == "" {
		return "N/A"
	}
	return v.LicensePlate
}

// TripsCSV bảng chi phí: ngày, xe, biển số, loại, mô tả, số tiền, có hoá đơn.
func TripsCSV(trips []trip.Trip, vehicles []vehicle.Vehicle) string {
	idx := vehicleIndex(vehicles)

	var b strings.Builder
	writeRow(&b, []string{"Ngày", "Xe", "Biển số", "Loại", "Mô tả", "Số tiền (VNĐ)", "Có hóa đơn"})
	for i := range trips {
		t := &trips[i]
		v := idx[t.VehicleID]
		hasReceipt := "Không"
		if t.ReceiptURL != "" {
			hasReceipt = "Có"
		}
		writeRow(&b, []string{
			t.CreatedAt.Format(dateLayout),
			v.Label(),
			plateOrNA(v),
			label(tripTypeLabels, t.Type),
			t.Description,
			strconv.FormatInt(t.Amount, 10),
			hasReceipt,
		})
	}
	return b.String()
}

// VehiclesCSV bảng tổng hợp theo xe: thông tin xe + tổng chi phí
// + số lần bảo dưỡng.
func VehiclesCSV(vehicles []vehicle.Vehicle, trips []trip.Trip) string {
	var b strings.Builder
	writeRow(&b, []string{"Hãng", "Dòng xe", "Năm", "Biển số", "Loại xe", "Số km", "Tổng chi phí (VNĐ)", "Số lần bảo dưỡng"})
	for i := range vehicles {
		v := &vehicles[i]
		var totalCost int64
		maintenanceCount := 0
		for j := range trips {
			if trips[j].VehicleID != v.ID {
				continue
			}
			totalCost += trips[j].Amount
			if trips[j].Type == trip.TypeMaintenance {
				maintenanceCount++
			}
		}
		writeRow(&b, []string{
			v.Make,
			v.Model,
			strconv.Itoa(v.Year),
			plateOrNA(v),
			label(vehicleTypeLabels, v.VehicleType),
			strconv.Itoa(v.Mileage),
			strconv.FormatInt(totalCost, 10),
			strconv.Itoa(maintenanceCount),
		})
	}
	return b.String()
}

// RemindersCSV bảng nhắc nhở: xe, biển số, loại, ngày đến hạn,
// trạng thái, tin nhắn.
func RemindersCSV(reminders []reminder.Reminder, vehicles []vehicle.Vehicle) string {
	idx := vehicleIndex(vehicles)

	var b strings.Builder
	writeRow(&b, []string{"Xe", "Biển số", "Loại nhắc nhở", "Ngày đến hạn", "Trạng thái", "Tin nhắn"})
	for i := range reminders {
		rm := &reminders[i]
		v := idx[rm.VehicleID]
		writeRow(&b, []string{
			v.Label(),
			plateOrNA(v),
			label(reminderKindLabels, rm.Kind),
			rm.DueDate.Format(dateLayout),
			label(reminderStatusLabels, rm.Status),
			rm.Message,
		})
	}
	return b.String()
}
