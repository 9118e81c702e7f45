package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phuchau23/CarS/internal/reminder"
	"github.com/phuchau23/CarS/internal/vehicle"
)

// store giả trong bộ nhớ cho lookup/create.
type memStore struct {
	reminders map[string][]reminder.Reminder
}

func newMemStore() *memStore {
	return &memStore{reminders: make(map[string][]reminder.Reminder)}
}

func (m *memStore) lookup(_ context.Context, vehicleID string) ([]reminder.Reminder, error) {
	return m.reminders[vehicleID], nil
}

func (m *memStore) create(_ context.Context, in reminder.CreateInput) (*reminder.Reminder, error) {
	rm := reminder.Reminder{
		ID:        uuid.NewString(),
		VehicleID: in.VehicleID,
		Kind:      in.Kind,
		DueDate:   in.DueDate,
		Status:    reminder.StatusPending,
		Message:   in.Message,
	}
	m.reminders[in.VehicleID] = append(m.reminders[in.VehicleID], rm)
	return &rm, nil
}

func testFleet() []vehicle.Vehicle {
	return []vehicle.Vehicle{
		{
			ID: "veh-1", Make: "Honda", Model: "Wave Alpha", Mileage: 15600,
			Schedule: []vehicle.MaintenanceItem{
				{VehicleID: "veh-1", Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 14000},
				{VehicleID: "veh-1", Kind: vehicle.KindCoolant, IntervalKm: 8000, LastServiceKm: 10000},
			},
		},
		{
			ID: "veh-2", Make: "Toyota", Model: "Vios", Mileage: 42000,
			Schedule: []vehicle.MaintenanceItem{
				{VehicleID: "veh-2", Kind: vehicle.KindOil, IntervalKm: 5000, LastServiceKm: 40000},
			},
		},
	}
}

func TestRunCycleCreatesDueReminders(t *testing.T) {
	store := newMemStore()
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	res := RunCycle(context.Background(), testFleet(), store.lookup, store.create, Options{Now: now})
	if len(res.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	// veh-1: oil còn 400km (sắp đến hạn), coolant còn 2400km (ok).
	// veh-2: oil còn 3000km (ok).
	if len(res.Created) != 1 {
		t.Fatalf("created = %d, want 1", len(res.Created))
	}
	rm := res.Created[0]
	if rm.VehicleID != "veh-1" || rm.Kind != vehicle.KindOil {
		t.Fatalf("unexpected reminder: %+v", rm)
	}
	if rm.Status != reminder.StatusPending {
		t.Fatalf("expected pending, got %s", rm.Status)
	}
	// 400km / 30km/ngày = 14 ngày (làm tròn lên).
	wantDue := now.AddDate(0, 0, 14)
	if !rm.DueDate.Equal(wantDue) {
		t.Fatalf("due date = %v, want %v", rm.DueDate, wantDue)
	}
	if rm.Message != "Sắp đến lịch thay dầu cho Honda Wave Alpha (còn 400km)" {
		t.Fatalf("unexpected message: %q", rm.Message)
	}
}

func TestRunCycleIdempotent(t *testing.T) {
	store := newMemStore()
	fleet := testFleet()
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	first := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{Now: now})
	if len(first.Created) != 1 {
		t.Fatalf("first run created = %d, want 1", len(first.Created))
	}
	// Chạy lại ngay, state không đổi: không được tạo trùng.
	second := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{Now: now.Add(time.Minute)})
	if len(second.Created) != 0 {
		t.Fatalf("second run created = %d, want 0", len(second.Created))
	}

	// Sau khi reminder bị dismissed thì chu kỳ mới được tạo lại.
	store.reminders["veh-1"][0].Status = reminder.StatusDismissed
	third := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{Now: now.Add(2 * time.Minute)})
	if len(third.Created) != 1 {
		t.Fatalf("third run created = %d, want 1", len(third.Created))
	}
}

func TestRunCycleOverdueMessage(t *testing.T) {
	store := newMemStore()
	fleet := []vehicle.Vehicle{{
		ID: "veh-1", Make: "Honda", Model: "Wave Alpha", Mileage: 16200,
		Schedule: []vehicle.MaintenanceItem{
			{VehicleID: "veh-1", Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 14000},
		},
	}}
	now := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

	res := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{Now: now})
	if len(res.Created) != 1 {
		t.Fatalf("created = %d, want 1", len(res.Created))
	}
	rm := res.Created[0]
	if rm.Message != "Đã quá hạn thay dầu cho Honda Wave Alpha (quá 200km)" {
		t.Fatalf("unexpected message: %q", rm.Message)
	}
	// Quá hạn thì due date là hôm nay luôn.
	if !rm.DueDate.Equal(now) {
		t.Fatalf("due date = %v, want %v", rm.DueDate, now)
	}
}

func TestRunCycleCollectsFailuresAndContinues(t *testing.T) {
	store := newMemStore()
	fleet := []vehicle.Vehicle{
		{
			ID: "veh-bad", Make: "Honda", Mileage: 10000,
			Schedule: []vehicle.MaintenanceItem{
				{VehicleID: "veh-bad", Kind: vehicle.KindOil, IntervalKm: 0, LastServiceKm: 9000},
			},
		},
		{
			ID: "veh-ok", Make: "Honda", Model: "Lead", Mileage: 15600,
			Schedule: []vehicle.MaintenanceItem{
				{VehicleID: "veh-ok", Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 14000},
			},
		},
	}

	res := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{})
	if len(res.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(res.Failures))
	}
	if res.Failures[0].VehicleID != "veh-bad" || res.Failures[0].Kind != vehicle.KindOil {
		t.Fatalf("unexpected failure: %v", res.Failures[0])
	}
	// Xe sau vẫn được xử lý bình thường.
	if len(res.Created) != 1 || res.Created[0].VehicleID != "veh-ok" {
		t.Fatalf("expected reminder for veh-ok, got %+v", res.Created)
	}
}

func TestRunCycleFlagsAnomaly(t *testing.T) {
	store := newMemStore()
	fleet := []vehicle.Vehicle{{
		ID: "veh-1", Make: "Honda", Mileage: 12000,
		Schedule: []vehicle.MaintenanceItem{
			{VehicleID: "veh-1", Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 13000},
		},
	}}

	res := RunCycle(context.Background(), fleet, store.lookup, store.create, Options{})
	if len(res.Anomalies) != 1 {
		t.Fatalf("anomalies = %d, want 1", len(res.Anomalies))
	}
	// Dữ liệu lệch được coi là vừa bảo dưỡng: không tạo reminder.
	if len(res.Created) != 0 {
		t.Fatalf("created = %d, want 0", len(res.Created))
	}
	if len(res.Failures) != 0 {
		t.Fatalf("failures = %d, want 0", len(res.Failures))
	}
}

func TestRunCycleCreateErrorCollected(t *testing.T) {
	fleet := []vehicle.Vehicle{{
		ID: "veh-1", Make: "Honda", Mileage: 15600,
		Schedule: []vehicle.MaintenanceItem{
			{VehicleID: "veh-1", Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 14000},
		},
	}}
	store := newMemStore()
	failingCreate := func(ctx context.Context, in reminder.CreateInput) (*reminder.Reminder, error) {
		return nil, fmt.Errorf("store unavailable")
	}

	res := RunCycle(context.Background(), fleet, store.lookup, failingCreate, Options{})
	if len(res.Created) != 0 {
		t.Fatalf("created = %d, want 0", len(res.Created))
	}
	if len(res.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(res.Failures))
	}
}

func TestConstantRateDaysUntil(t *testing.T) {
	e := ConstantRate{KmPerDay: 30}
	if got := e.DaysUntil(30); got != 1 {
		t.Fatalf("DaysUntil(30) = %d, want 1", got)
	}
	if got := e.DaysUntil(31); got != 2 {
		t.Fatalf("DaysUntil(31) = %d, want 2", got)
	}
	if got := e.DaysUntil(0); got != 0 {
		t.Fatalf("DaysUntil(0) = %d, want 0", got)
	}
	if got := e.DaysUntil(-100); got != 0 {
		t.Fatalf("DaysUntil(-100) = %d, want 0", got)
	}
	// KmPerDay không cấu hình thì dùng mặc định 30.
	if got := (ConstantRate{}).DaysUntil(60); got != 2 {
		t.Fatalf("default rate DaysUntil(60) = %d, want 2", got)
	}
}
