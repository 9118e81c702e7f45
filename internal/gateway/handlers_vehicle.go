package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/maintenance"
	"github.com/phuchau23/CarS/internal/recommend"
	"github.com/phuchau23/CarS/internal/vehicle"
)

type scheduleItemRequest struct {
	Kind            string `json:"kind" binding:"required"`
	IntervalKm      int    `json:"interval_km" binding:"required"`
	LastServiceKm   int    `json:"last_service_km"`
	LastServiceDate string `json:"last_service_date"` // yyyy-mm-dd, rỗng = chưa có
}

type createVehicleRequest struct {
	Brand        string                `json:"brand"`
	Make         string                `json:"make"`
	Model        string                `json:"model"`
	Year         int                   `json:"year"`
	VehicleType  string                `json:"vehicle_type" binding:"required"`
	LicensePlate string                `json:"license_plate"`
	Color        string                `json:"color"`
	EngineSize   string                `json:"engine_size"`
	Mileage      int                   `json:"mileage"`
	Schedule     []scheduleItemRequest `json:"schedule"`
}

func (s *Server) handleCreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := vehicle.RegisterVehicleInput{
		Brand:        req.Brand,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VehicleType:  vehicle.Type(req.VehicleType),
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		EngineSize:   req.EngineSize,
		Mileage:      req.Mileage,
	}
	if ai, ok := CurrentUser(c); ok {
		in.OwnerID = ai.Subject
	}
	for _, it := range req.Schedule {
		si := vehicle.ScheduleInput{
			Kind:          vehicle.MaintenanceKind(it.Kind),
			IntervalKm:    it.IntervalKm,
			LastServiceKm: it.LastServiceKm,
		}
		if it.LastServiceDate != "" {
			d, err := time.Parse("2006-01-02", it.LastServiceDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "last_service_date không đúng định dạng yyyy-mm-dd"})
				return
			}
			si.LastServiceDate = d
		}
		in.Schedule = append(in.Schedule, si)
	}

	v, err := s.vehicles.RegisterVehicle(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (s *Server) handleListVehicles(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	ownerID := c.Query("owner_id")

	vehicles, total, err := s.vehicleRepo.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": vehicles})
}

func (s *Server) handleGetVehicle(c *gin.Context) {
	v, err := s.vehicleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "không tìm thấy xe"})
		return
	}
	c.JSON(http.StatusOK, v)
}

type updateOdometerRequest struct {
	Mileage int `json:"mileage" binding:"required"`
}

func (s *Server) handleUpdateOdometer(c *gin.Context) {
	var req updateOdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := s.vehicles.UpdateOdometer(c.Request.Context(), c.Param("id"), req.Mileage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

type recordServiceRequest struct {
	Kind       string `json:"kind" binding:"required"`
	IntervalKm int    `json:"interval_km"` // 0 = giữ chu kỳ hiện tại
}

// handleRecordService ghi nhận xe vừa bảo dưỡng xong một hạng mục:
// mốc LastServiceKm được đặt lại theo odometer hiện tại.
func (s *Server) handleRecordService(c *gin.Context) {
	var req recordServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.vehicles.RecordService(c.Request.Context(), c.Param("id"),
		vehicle.MaintenanceKind(req.Kind), req.IntervalKm, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleMaintenanceStatus chiếu trạng thái bảo dưỡng hiện tại của xe
// theo từng hạng mục trong lịch.
func (s *Server) handleMaintenanceStatus(c *gin.Context) {
	v, err := s.vehicleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "không tìm thấy xe"})
		return
	}

	out := make([]gin.H, 0, len(v.Schedule))
	for _, item := range v.Schedule {
		p, err := maintenance.Project(v.Mileage, item, s.cfg.Scheduler.Thresholds)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, gin.H{
			"kind":                   p.Kind,
			"distance_since_service": p.DistanceSinceService,
			"remaining_km":           p.RemainingKm,
			"percent_elapsed":        p.PercentElapsed,
			"classification":         p.Classification,
			"data_anomaly":           p.DataAnomaly,
		})
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_id": v.ID, "mileage": v.Mileage, "items": out})
}

// handleLubricant gợi ý dầu nhớt theo loại xe và tuổi xe, đồng thời
// lưu lại lần gợi ý để xem lịch sử.
func (s *Server) handleLubricant(c *gin.Context) {
	v, err := s.vehicleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "không tìm thấy xe"})
		return
	}

	now := time.Now()
	product := recommend.Lubricant(v, now)
	if _, err := s.recommends.RecordFor(c.Request.Context(), v, now); err != nil && s.log != nil {
		s.log.Warnf("failed to record recommendation: %v", err)
	}
	c.JSON(http.StatusOK, product)
}

// handleDeleteVehicle xoá xe kèm toàn bộ dữ liệu phụ thuộc
// (chi phí, reminder, gợi ý). Chỉ manager/admin được gọi.
func (s *Server) handleDeleteVehicle(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := s.vehicleRepo.FindByID(ctx, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "không tìm thấy xe"})
		return
	}

	if err := s.tripRepo.DeleteByVehicle(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.reminderRepo.DeleteByVehicle(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.recommends.DeleteByVehicle(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
