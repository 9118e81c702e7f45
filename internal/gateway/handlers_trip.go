package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuchau23/CarS/internal/trip"
)

type recordTripRequest struct {
	VehicleID   string `json:"vehicle_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReceiptURL  string `json:"receipt_url"`
}

func (s *Server) handleRecordTrip(c *gin.Context) {
	var req recordTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := trip.RecordInput{
		VehicleID:   req.VehicleID,
		Type:        trip.Type(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}
	if ai, ok := CurrentUser(c); ok {
		in.DriverID = ai.Subject
	}

	t, err := s.trips.Record(c.Request.Context(), in, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleListTrips(c *gin.Context) {
	f := trip.ListFilter{
		VehicleID: c.Query("vehicle_id"),
		DriverID:  c.Query("driver_id"),
		Type:      trip.Type(c.Query("type")),
	}
	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from không đúng định dạng yyyy-mm-dd"})
			return
		}
		f.From = d
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to không đúng định dạng yyyy-mm-dd"})
			return
		}
		f.To = d
	}

	trips, err := s.trips.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": trips})
}
