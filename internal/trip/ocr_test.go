package trip

import (
	"testing"
	"time"
)

func TestSimulateOCRDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	a := SimulateOCR("https://example.com/receipt-1.jpg", now)
	b := SimulateOCR("https://example.com/receipt-1.jpg", now)
	if a == nil || b == nil {
		t.Fatalf("expected ocr data")
	}
	if a.Vendor != b.Vendor || len(a.Items) != len(b.Items) || a.Total != b.Total {
		t.Fatalf("expected deterministic result for same receipt url")
	}

	var want int64
	for _, it := range a.Items {
		want += it.Price * int64(it.Quantity)
	}
	if a.Total != want {
		t.Fatalf("total = %d, want %d", a.Total, want)
	}
	if a.Date != "2025-06-01" {
		t.Fatalf("date = %s", a.Date)
	}
}

func TestSimulateOCREmptyURL(t *testing.T) {
	if got := SimulateOCR("", time.Now()); got != nil {
		t.Fatalf("expected nil for empty receipt url")
	}
}
