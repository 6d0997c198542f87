package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// AllowedTransitions is the booking status graph. REJECTED, CANCELLED and
// COMPLETED are terminal.
var AllowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusRejected:  {},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave the status.
func (s BookingStatus) IsTerminal() bool {
	return len(AllowedTransitions[s]) == 0
}

type Booking struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VehicleID        primitive.ObjectID  `json:"vehicle_id" bson:"vehicle_id"`
	UserID           primitive.ObjectID  `json:"user_id" bson:"user_id"`
	ApproverID       *primitive.ObjectID `json:"approver_id,omitempty" bson:"approver_id,omitempty"`
	StartTime        time.Time           `json:"start_time" bson:"start_time"`
	EndTime          time.Time           `json:"end_time" bson:"end_time"`
	PickupLocation   string              `json:"pickup_location" bson:"pickup_location"`
	ReturnLocation   string              `json:"return_location" bson:"return_location"`
	Purpose          string              `json:"purpose,omitempty" bson:"purpose,omitempty"`
	Status           BookingStatus       `json:"status" bson:"status"`
	ApprovalRequired bool                `json:"approval_required" bson:"approval_required"`
	RejectionReason  string              `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`

	// Joined from the booking_usages collection on reads; never persisted
	// inside the bookings document.
	Usage *BookingUsage `json:"usage,omitempty" bson:"-"`
}

type BookingUsage struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID         primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	StartMileage      int64              `json:"start_mileage" bson:"start_mileage"`
	EndMileage        *int64             `json:"end_mileage,omitempty" bson:"end_mileage,omitempty"`
	StartFuelLevel    float64            `json:"start_fuel_level" bson:"start_fuel_level"`
	EndFuelLevel      *float64           `json:"end_fuel_level,omitempty" bson:"end_fuel_level,omitempty"`
	DistanceTravelled *int64             `json:"distance_travelled,omitempty" bson:"distance_travelled,omitempty"`
	DamageReported    bool               `json:"damage_reported" bson:"damage_reported"`
	DamageDescription string             `json:"damage_description,omitempty" bson:"damage_description,omitempty"`
	PreTripPhotos     []string           `json:"pre_trip_photos,omitempty" bson:"pre_trip_photos,omitempty"`
	PostTripPhotos    []string           `json:"post_trip_photos,omitempty" bson:"post_trip_photos,omitempty"`
	CheckoutComments  string             `json:"checkout_comments,omitempty" bson:"checkout_comments,omitempty"`
	CheckinComments   string             `json:"checkin_comments,omitempty" bson:"checkin_comments,omitempty"`
	CheckedOutAt      time.Time          `json:"checked_out_at" bson:"checked_out_at"`
	CheckedInAt       *time.Time         `json:"checked_in_at,omitempty" bson:"checked_in_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// CheckedIn reports whether the usage record has been finalized.
func (u *BookingUsage) CheckedIn() bool {
	return u.CheckedInAt != nil
}

// Overlaps reports whether the booking window intersects [start, end).
// Windows are half-open, so back-to-back bookings do not collide.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
