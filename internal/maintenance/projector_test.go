package maintenance

import (
	"errors"
	"testing"

	"github.com/phuchau23/CarS/internal/vehicle"
)

func TestProjectClassification(t *testing.T) {
	item := vehicle.MaintenanceItem{
		Kind:          vehicle.KindOil,
		IntervalKm:    2000,
		LastServiceKm: 14000,
	}

	cases := []struct {
		name      string
		currentKm int
		remaining int
		distance  int
		class     Classification
	}{
		{"con xa han", 15000, 1000, 1000, ClassOK},
		{"sap den han", 15600, 400, 1600, ClassDueSoon},
		{"qua han", 16200, -200, 2200, ClassOverdue},
		{"vua cham han", 16000, 0, 2000, ClassOverdue},
	}

	for _, tc := range cases {
		p, err := Project(tc.currentKm, item, nil)
		if err != nil {
			t.Fatalf("%s: Project: %v", tc.name, err)
		}
		if p.DistanceSinceService != tc.distance {
			t.Fatalf("%s: distance = %d, want %d", tc.name, p.DistanceSinceService, tc.distance)
		}
		if p.RemainingKm != tc.remaining {
			t.Fatalf("%s: remaining = %d, want %d", tc.name, p.RemainingKm, tc.remaining)
		}
		if p.Classification != tc.class {
			t.Fatalf("%s: classification = %s, want %s", tc.name, p.Classification, tc.class)
		}
		if p.DataAnomaly {
			t.Fatalf("%s: unexpected data anomaly", tc.name)
		}
	}
}

func TestProjectInvalidInterval(t *testing.T) {
	item := vehicle.MaintenanceItem{Kind: vehicle.KindOil, IntervalKm: 0}
	_, err := Project(15000, item, nil)
	if err == nil {
		t.Fatalf("expected error for interval 0")
	}
	var ise *InvalidScheduleError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidScheduleError, got %v", err)
	}
	if ise.Kind != vehicle.KindOil {
		t.Fatalf("expected kind oil, got %s", ise.Kind)
	}
}

func TestProjectDataAnomaly(t *testing.T) {
	// Mốc lần bảo dưỡng gần nhất lớn hơn odometer: coi như vừa bảo dưỡng,
	// gắn cờ để UI cảnh báo thay vì báo quá hạn sai.
	item := vehicle.MaintenanceItem{
		Kind:          vehicle.KindCoolant,
		IntervalKm:    8000,
		LastServiceKm: 20000,
	}
	p, err := Project(15000, item, nil)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !p.DataAnomaly {
		t.Fatalf("expected data anomaly flag")
	}
	if p.DistanceSinceService != 0 {
		t.Fatalf("expected distance clamped to 0, got %d", p.DistanceSinceService)
	}
	if p.RemainingKm != 8000 {
		t.Fatalf("expected remaining 8000, got %d", p.RemainingKm)
	}
	if p.Classification != ClassOK {
		t.Fatalf("expected ok, got %s", p.Classification)
	}
}

func TestProjectPercentElapsed(t *testing.T) {
	item := vehicle.MaintenanceItem{Kind: vehicle.KindOil, IntervalKm: 2000, LastServiceKm: 0}

	p, _ := Project(1000, item, nil)
	if p.PercentElapsed != 50 {
		t.Fatalf("expected 50%%, got %v", p.PercentElapsed)
	}
	// Quá hạn thì percent bị chặn ở 100.
	p, _ = Project(5000, item, nil)
	if p.PercentElapsed != 100 {
		t.Fatalf("expected clamp to 100%%, got %v", p.PercentElapsed)
	}
}

func TestDueSoonThresholdOverride(t *testing.T) {
	if got := DueSoonThreshold(vehicle.KindOil, nil); got != 500 {
		t.Fatalf("default oil threshold = %d, want 500", got)
	}
	if got := DueSoonThreshold(vehicle.KindCoolant, nil); got != 2000 {
		t.Fatalf("default coolant threshold = %d, want 2000", got)
	}
	got := DueSoonThreshold(vehicle.KindOil, map[string]int{"oil": 800})
	if got != 800 {
		t.Fatalf("override oil threshold = %d, want 800", got)
	}
	// Loại không có mặc định riêng rơi về fallback.
	if got := DueSoonThreshold(vehicle.MaintenanceKind("chain"), nil); got != fallbackDueSoonThreshold {
		t.Fatalf("fallback threshold = %d, want %d", got, fallbackDueSoonThreshold)
	}
}
