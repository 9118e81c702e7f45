package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/reminder"
	"gorm.io/gorm"
)

func (s *Server) handleListReminders(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := reminder.Status(c.Query("status"))

	items, total, err := s.reminderRepo.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": items})
}

func (s *Server) handleVehicleReminders(c *gin.Context) {
	items, err := s.reminderRepo.ListByVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// transitionErrorStatus ánh xạ lỗi chuyển trạng thái sang mã HTTP:
// chuyển không hợp lệ (ví dụ từ dismissed) -> 409, không tìm thấy
// reminder -> 404, còn lại là input sai -> 400.
func transitionErrorStatus(err error) int {
	var ite *reminder.InvalidTransitionError
	switch {
	case errors.As(err, &ite):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// handleReminderTransition chuyển trạng thái reminder theo state machine.
func (s *Server) handleReminderTransition(to reminder.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		rm, err := s.reminders.UpdateStatus(c.Request.Context(), c.Param("id"), to, time.Now())
		if err != nil {
			c.JSON(transitionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rm)
	}
}

// handleRunScheduler chạy ngay một vòng quét nhắc nhở (ngoài lịch ticker).
func (s *Server) handleRunScheduler(c *gin.Context) {
	result, err := s.sched.RunOnce(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	failures := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, f.Error())
	}
	anomalies := make([]string, 0, len(result.Anomalies))
	for _, a := range result.Anomalies {
		anomalies = append(anomalies, a.Error())
	}

	c.JSON(http.StatusOK, gin.H{
		"created":   len(result.Created),
		"failures":  failures,
		"anomalies": anomalies,
	})
}
