package models

import "time"

type User struct {
	UserID     string `json:"userId" gorm:"primaryKey;size:64" bson:"userId"` // login name
	Name       string `json:"name" bson:"name"`
	Role       Role   `json:"role" gorm:"size:16;index" bson:"role"` // "admin", "hod", "driver", "employee"
	Department string `json:"department" bson:"department"`
	// Password is compared verbatim at login. It is stored as given.
	Password string `json:"-" bson:"password"`
	// DriverID scopes a driver's own booking history. Only meaningful for drivers.
	DriverID string `json:"driverId,omitempty" gorm:"size:64;index" bson:"driverId,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
