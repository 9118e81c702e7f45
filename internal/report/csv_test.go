package report

import (
	"strings"
	"testing"
	"time"

	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/vehicle"
)

func TestTripsCSV(t *testing.T) {
	vehicles := []vehicle.Vehicle{{
		ID: "v1", Make: "Honda", Model: "Wave Alpha", LicensePlate: "29A1-12345",
	}}
	trips := []trip.Trip{{
		VehicleID:   "v1",
		Type:        trip.TypeMaintenance,
		Amount:      180000,
		Description: "Thay dầu định kỳ",
		ReceiptURL:  "https://example.com/r1.jpg",
		CreatedAt:   time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}}

	out := TripsCSV(trips, vehicles)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != `"Ngày","Xe","Biển số","Loại","Mô tả","Số tiền (VNĐ)","Có hóa đơn"` {
		t.Fatalf("header = %s", lines[0])
	}
	want := `"15/03/2025","Honda Wave Alpha","29A1-12345","Bảo dưỡng","Thay dầu định kỳ","180000","Có"`
	if lines[1] != want {
		t.Fatalf("row = %s, want %s", lines[1], want)
	}
}

func TestTripsCSVUnknownVehicleAndNoReceipt(t *testing.T) {
	trips := []trip.Trip{{
		VehicleID: "missing",
		Type:      trip.TypeFuel,
		Amount:    50000,
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}}
	out := TripsCSV(trips, nil)
	row := strings.Split(strings.TrimRight(out, "\n"), "\n")[1]
	if !strings.Contains(row, `"N/A","N/A","Nhiên liệu"`) {
		t.Fatalf("row = %s", row)
	}
	if !strings.HasSuffix(row, `"Không"`) {
		t.Fatalf("expected no-receipt flag: %s", row)
	}
}

func TestVehiclesCSV(t *testing.T) {
	vehicles := []vehicle.Vehicle{{
		ID: "v1", Make: "Honda", Model: "Wave Alpha", Year: 2022,
		LicensePlate: "29A1-12345", VehicleType: vehicle.TypeMotorbike, Mileage: 15000,
	}}
	now := time.Now()
	trips := []trip.Trip{
		{VehicleID: "v1", Type: trip.TypeMaintenance, Amount: 200000, CreatedAt: now},
		{VehicleID: "v1", Type: trip.TypeFuel, Amount: 100000, CreatedAt: now},
		{VehicleID: "other", Type: trip.TypeMaintenance, Amount: 999, CreatedAt: now},
	}

	out := VehiclesCSV(vehicles, trips)
	row := strings.Split(strings.TrimRight(out, "\n"), "\n")[1]
	want := `"Honda","Wave Alpha","2022","29A1-12345","Xe máy","15000","300000","1"`
	if row != want {
		t.Fatalf("row = %s, want %s", row, want)
	}
}

func TestRemindersCSV(t *testing.T) {
	vehicles := []vehicle.Vehicle{{
		ID: "v1", Make: "Honda", Model: "Wave Alpha", LicensePlate: "29A1-12345",
	}}
	reminders := []reminder.Reminder{{
		VehicleID: "v1",
		Kind:      vehicle.KindOil,
		DueDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:    reminder.StatusPending,
		Message:   "Sắp đến lịch thay dầu cho Honda Wave Alpha (còn 400km)",
	}}

	out := RemindersCSV(reminders, vehicles)
	row := strings.Split(strings.TrimRight(out, "\n"), "\n")[1]
	want := `"Honda Wave Alpha","29A1-12345","Thay dầu","01/04/2025","Chờ","Sắp đến lịch thay dầu cho Honda Wave Alpha (còn 400km)"`
	if row != want {
		t.Fatalf("row = %s, want %s", row, want)
	}
}

func TestCSVQuoteEscaping(t *testing.T) {
	trips := []trip.Trip{{
		VehicleID:   "v1",
		Type:        trip.TypeOther,
		Description: `Rửa xe "VIP"`,
		CreatedAt:   time.Now(),
	}}
	out := TripsCSV(trips, nil)
	if !strings.Contains(out, `"Rửa xe ""VIP"""`) {
		t.Fatalf("quotes not escaped: %s", out)
	}
}

func TestUTF8BOMBytes(t *testing.T) {
	if UTF8BOM != "\xef\xbb\xbf" {
		t.Fatalf("UTF8BOM = %q, want EF BB BF", UTF8BOM)
	}
}
