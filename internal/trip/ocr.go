package trip

import (
	"hash/fnv"
	"time"
)

// Danh mục giả lập cho OCR (chưa tích hợp OCR thật).
var (
	ocrVendors = []string{
		"Cửa hàng Phụ tùng Minh",
		"Garage Hoàng Long",
		"Trung tâm bảo dưỡng ABC",
		"Cửa hàng dầu nhớt XYZ",
	}
	ocrItems = []OCRItem{
		{Name: "Dầu nhớt Castrol 10W-40", Quantity: 1, Price: 180000},
		{Name: "Lọc dầu", Quantity: 1, Price: 50000},
		{Name: "Công thay dầu", Quantity: 1, Price: 30000},
		{Name: "Kiểm tra tổng quát", Quantity: 1, Price: 0},
	}
)

// SimulateOCR trích xuất giả lập từ ảnh biên lai: cùng một receiptURL
// luôn cho cùng một kết quả (hash URL thay vì random) để form không
// nhảy dữ liệu khi render lại.
func SimulateOCR(receiptURL string, now time.Time) *OCRData {
	if receiptURL == "" {
		return nil
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(receiptURL))
	seed := h.Sum32()

	count := 2 + int(seed%2) // 2 hoặc 3 dòng
	items := make([]OCRItem, count)
	copy(items, ocrItems[:count])

	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}

	return &OCRData{
		Vendor: ocrVendors[int(seed)%len(ocrVendors)],
		Date:   now.Format("2006-01-02"),
		Items:  items,
		Total:  total,
	}
}
