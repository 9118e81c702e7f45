package scheduler

// UsageEstimator quy đổi quãng đường còn lại (km) ra số ngày.
// Tách thành interface vì giả định về cường độ sử dụng xe là heuristic,
// có thể thay bằng ước lượng theo lịch sử từng xe sau này.
type UsageEstimator interface {
	DaysUntil(remainingKm int) int
}

const defaultKmPerDay = 30

// ConstantRate ước lượng theo quãng đường trung bình cố định mỗi ngày.
type ConstantRate struct {
	KmPerDay int
}

func (e ConstantRate) DaysUntil(remainingKm int) int {
	if remainingKm <= 0 {
		return 0
	}
	rate := e.KmPerDay
	if rate <= 0 {
		rate = defaultKmPerDay
	}
	// Làm tròn lên: 31km với 30km/ngày là 2 ngày.
	return (remainingKm + rate - 1) / rate
}
