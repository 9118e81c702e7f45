package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/phuchau23/CarS/internal/trip"
	"github.com/phuchau23/CarS/internal/vehicle"
)

func mkTrip(vehicleID string, tt trip.Type, amount int64, created time.Time) trip.Trip {
	return trip.Trip{VehicleID: vehicleID, Type: tt, Amount: amount, CreatedAt: created}
}

func TestMonthlyRollupGroupsByMonthAndType(t *testing.T) {
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	trips := []trip.Trip{
		mkTrip("v1", trip.TypeFuel, 100000, jan),
		mkTrip("v1", trip.TypeFuel, 50000, jan.AddDate(0, 0, 10)),
		mkTrip("v1", trip.TypeMaintenance, 200000, jan),
		mkTrip("v2", trip.TypeRepair, 300000, jan.AddDate(0, 1, 0)),
	}

	buckets := MonthlyRollup(trips, 0)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Month != "2025-01" || buckets[1].Month != "2025-02" {
		t.Fatalf("unexpected order: %s, %s", buckets[0].Month, buckets[1].Month)
	}
	if buckets[0].Fuel != 150000 {
		t.Fatalf("jan fuel = %d, want 150000", buckets[0].Fuel)
	}
	if buckets[0].Maintenance != 200000 {
		t.Fatalf("jan maintenance = %d, want 200000", buckets[0].Maintenance)
	}
	if buckets[0].Total() != 350000 {
		t.Fatalf("jan total = %d, want 350000", buckets[0].Total())
	}
	if buckets[1].Repair != 300000 {
		t.Fatalf("feb repair = %d, want 300000", buckets[1].Repair)
	}
}

func TestMonthlyRollupTruncatesToRecentMonths(t *testing.T) {
	// 10 tháng liên tiếp, mỗi tháng một khoản chi.
	var trips []trip.Trip
	for m := 0; m < 10; m++ {
		created := time.Date(2024, time.Month(1+m), 15, 0, 0, 0, 0, time.UTC)
		trips = append(trips, mkTrip("v1", trip.TypeFuel, int64(m+1), created))
	}

	buckets := MonthlyRollup(trips, 6)
	if len(buckets) != 6 {
		t.Fatalf("buckets = %d, want 6", len(buckets))
	}
	if buckets[0].Month != "2024-05" {
		t.Fatalf("oldest kept = %s, want 2024-05", buckets[0].Month)
	}
	if buckets[5].Month != "2024-10" {
		t.Fatalf("newest = %s, want 2024-10", buckets[5].Month)
	}
}

func TestMonthlyRollupSparse(t *testing.T) {
	trips := []trip.Trip{
		mkTrip("v1", trip.TypeFuel, 1, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		mkTrip("v1", trip.TypeFuel, 2, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
	}
	buckets := MonthlyRollup(trips, 12)
	// Không chèn tháng rỗng ở giữa.
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
}

func TestPerVehicleRanking(t *testing.T) {
	vehicles := []vehicle.Vehicle{
		{ID: "v1", Make: "Honda", Model: "Wave Alpha"},
		{ID: "v2", Make: "Toyota", Model: "Vios"},
		{ID: "v3", Make: "Yamaha", Model: "Sirius"},
	}
	now := time.Now()
	trips := []trip.Trip{
		mkTrip("v1", trip.TypeFuel, 100000, now),
		mkTrip("v2", trip.TypeRepair, 500000, now),
		mkTrip("v2", trip.TypeFuel, 100000, now),
	}

	ranked := PerVehicleRanking(vehicles, trips)
	if len(ranked) != 3 {
		t.Fatalf("ranked = %d, want 3", len(ranked))
	}
	if ranked[0].Vehicle.ID != "v2" || ranked[0].TotalAmount != 600000 || ranked[0].TripCount != 2 {
		t.Fatalf("top: %+v", ranked[0])
	}
	if ranked[1].Vehicle.ID != "v1" {
		t.Fatalf("second: %+v", ranked[1])
	}
	// Xe không có chi phí vẫn xuất hiện với tổng 0, xếp cuối.
	if ranked[2].Vehicle.ID != "v3" || ranked[2].TotalAmount != 0 || ranked[2].TripCount != 0 {
		t.Fatalf("last: %+v", ranked[2])
	}
}

func TestPerVehicleRankingStableOnTies(t *testing.T) {
	var vehicles []vehicle.Vehicle
	for i := 0; i < 5; i++ {
		vehicles = append(vehicles, vehicle.Vehicle{ID: fmt.Sprintf("v%d", i)})
	}
	ranked := PerVehicleRanking(vehicles, nil)
	for i := range ranked {
		if ranked[i].Vehicle.ID != fmt.Sprintf("v%d", i) {
			t.Fatalf("tie order broken at %d: %s", i, ranked[i].Vehicle.ID)
		}
	}
}

func TestPerVehicleRankingIgnoresOrphanTrips(t *testing.T) {
	vehicles := []vehicle.Vehicle{{ID: "v1"}}
	trips := []trip.Trip{
		mkTrip("v1", trip.TypeFuel, 100, time.Now()),
		mkTrip("deleted", trip.TypeFuel, 999, time.Now()),
	}
	ranked := PerVehicleRanking(vehicles, trips)
	if len(ranked) != 1 || ranked[0].TotalAmount != 100 {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
}
