package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/booking"
)

var errInvalidDate = errors.New("invalid date")

// bookingInput mirrors the HOD/employee request form. Every field is optional.
type bookingInput struct {
	Date            string `json:"date" form:"date"`
	DriverID        string `json:"driverId" form:"driverId"`
	DriverName      string `json:"driverName" form:"driverName"`
	CabNumber       string `json:"cabNumber" form:"cabNumber"`
	PassengerName   string `json:"passengerName" form:"passengerName"`
	PickupLocation  string `json:"pickupLocation" form:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation" form:"dropoffLocation"`
	PickupTime      string `json:"pickupTime" form:"pickupTime"`
	DropoffTime     string `json:"dropoffTime" form:"dropoffTime"`
	Notes           string `json:"notes" form:"notes"`
}

func (in bookingInput) fields() (booking.Fields, error) {
	f := booking.Fields{
		DriverID:        in.DriverID,
		DriverName:      in.DriverName,
		CabNumber:       in.CabNumber,
		PassengerName:   in.PassengerName,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
		PickupTime:      in.PickupTime,
		DropoffTime:     in.DropoffTime,
		Notes:           in.Notes,
	}
	raw := strings.TrimSpace(in.Date)
	if raw == "" {
		return f, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if d, err := time.Parse(layout, raw); err == nil {
			f.Date = &d
			return f, nil
		}
	}
	return f, errInvalidDate
}

// CreateBooking saves a booking submitted from the HOD or employee form.
func (ctl *Controller) CreateBooking(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	fields, err := input.fields()
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid date")
		return
	}

	if _, err := ctl.ledger.Create(c.Request.Context(), fields); err != nil {
		logrus.WithError(err).Error("Error saving booking")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.String(http.StatusCreated, "Booking saved successfully")
}

// HODBookings lists every booking for the HOD bookings page.
func (ctl *Controller) HODBookings(c *gin.Context) {
	bookings, err := ctl.ledger.ListAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Error fetching bookings")
		c.String(http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": "hodBookings", "bookings": bookings})
}
