package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/report"
	"github.com/phuchau23/CarS/internal/trip"
)

const exportBatchLimit = 10000

func (s *Server) handleMonthlyReport(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	trips, err := s.tripRepo.List(c.Request.Context(), trip.ListFilter{
		VehicleID: c.Query("vehicle_id"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	buckets := report.MonthlyRollup(trips, months)
	out := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, gin.H{
			"month":       b.Month,
			"maintenance": b.Maintenance,
			"fuel":        b.Fuel,
			"repair":      b.Repair,
			"other":       b.Other,
			"total":       b.Total(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"months": out})
}

func (s *Server) handleVehicleRanking(c *gin.Context) {
	ctx := c.Request.Context()

	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	trips, err := s.tripRepo.List(ctx, trip.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": report.PerVehicleRanking(vehicles, trips)})
}

func writeCSV(c *gin.Context, filename, content string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.String(http.StatusOK, report.UTF8BOM+content)
}

func (s *Server) handleExportTrips(c *gin.Context) {
	ctx := c.Request.Context()
	trips, err := s.tripRepo.List(ctx, trip.ListFilter{VehicleID: c.Query("vehicle_id")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeCSV(c, "chi-phi.csv", report.TripsCSV(trips, vehicles))
}

func (s *Server) handleExportVehicles(c *gin.Context) {
	ctx := c.Request.Context()
	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	trips, err := s.tripRepo.List(ctx, trip.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeCSV(c, "danh-sach-xe.csv", report.VehiclesCSV(vehicles, trips))
}

func (s *Server) handleExportReminders(c *gin.Context) {
	ctx := c.Request.Context()
	reminders, _, err := s.reminderRepo.List(ctx, "", 0, exportBatchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeCSV(c, "nhac-nho.csv", report.RemindersCSV(reminders, vehicles))
}
