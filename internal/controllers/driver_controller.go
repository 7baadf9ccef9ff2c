package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"transport_booking/internal/middleware"
	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

// tripOutcomeInput is the driver's post-trip form.
type tripOutcomeInput struct {
	BookingID        string `json:"bookingId" form:"bookingId"`
	DistanceTraveled string `json:"distanceTraveled" form:"distanceTraveled"`
	TollUsage        string `json:"tollUsage" form:"tollUsage"`
}

// DriverDashboard shows drivers the full, unfiltered booking list.
func (ctl *Controller) DriverDashboard(c *gin.Context) {
	bookings, err := ctl.ledger.ListAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Error fetching bookings")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": "driverDashboard", "bookingList": bookings})
}

// DriverHistory lists the bookings assigned to the driver in the session.
func (ctl *Controller) DriverHistory(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	if sess.DriverID == "" {
		// an empty id would match every unassigned booking
		logrus.WithField("user_id", sess.UserID).Warn("Driver session has no driverId, history is empty")
		c.JSON(http.StatusOK, gin.H{"view": "driverHistory", "bookings": []models.BookingRequest{}})
		return
	}

	bookings, err := ctl.ledger.ListForDriver(c.Request.Context(), sess.DriverID)
	if err != nil {
		logrus.WithError(err).WithField("driver_id", sess.DriverID).Error("Error fetching bookings")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": "driverHistory", "bookings": bookings})
}

// UpdateBooking records distance and toll usage on an existing booking.
func (ctl *Controller) UpdateBooking(c *gin.Context) {
	var input tripOutcomeInput
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	_, err := ctl.ledger.RecordTripOutcome(c.Request.Context(), input.BookingID, input.DistanceTraveled, input.TollUsage)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.String(http.StatusNotFound, "Booking not found")
			return
		}
		logrus.WithError(err).WithField("booking_id", input.BookingID).Error("Error updating booking")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.String(http.StatusOK, "Booking updated successfully")
}

// SaveTripForm accepts the legacy dashboard form. It only logs the values and
// sends the driver back to the dashboard; UpdateBooking is the persisting path.
func (ctl *Controller) SaveTripForm(c *gin.Context) {
	logrus.WithFields(logrus.Fields{
		"distance":   c.PostForm("distance"),
		"toll_usage": c.PostForm("tollUsage"),
	}).Info("Trip form submitted")
	c.Redirect(http.StatusFound, "/driver/dashboard")
}
