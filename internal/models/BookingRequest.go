// internal/models/BookingRequest.go
package models

import (
	"time"
)

// BookingRequest is a single transport reservation. Only DistanceTraveled and
// TollUsage change after creation.
type BookingRequest struct {
	ID   string     `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Date *time.Time `json:"date,omitempty" bson:"date,omitempty"`

	DriverID   string `json:"driverId" gorm:"size:64;index" bson:"driverId"` // assigned driver, may be empty
	DriverName string `json:"driverName" bson:"driverName"`
	CabNumber  string `json:"cabNumber" bson:"cabNumber"`

	PassengerName   string `json:"passengerName" bson:"passengerName"`
	PickupLocation  string `json:"pickupLocation" bson:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation" bson:"dropoffLocation"`
	PickupTime      string `json:"pickupTime" bson:"pickupTime"`
	DropoffTime     string `json:"dropoffTime" bson:"dropoffTime"`
	Notes           string `json:"notes" bson:"notes"`

	// Filled in by the driver after the trip.
	DistanceTraveled string `json:"distanceTraveled" bson:"distanceTraveled"`
	TollUsage        string `json:"tollUsage" bson:"tollUsage"`

	CreatedAt time.Time `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasTripOutcome reports whether the driver has recorded the trip.
func (b BookingRequest) HasTripOutcome() bool {
	return b.DistanceTraveled != "" || b.TollUsage != ""
}
