package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to approved", BookingStatusPending, BookingStatusApproved, true},
		{"pending to rejected", BookingStatusPending, BookingStatusRejected, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"approved to cancelled", BookingStatusApproved, BookingStatusCancelled, true},
		{"approved to completed", BookingStatusApproved, BookingStatusCompleted, true},
		{"approved to rejected", BookingStatusApproved, BookingStatusRejected, false},
		{"approved to pending", BookingStatusApproved, BookingStatusPending, false},
		{"rejected is terminal", BookingStatusRejected, BookingStatusApproved, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusApproved, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusApproved.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
}

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	booking := &Booking{
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour),
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical window", base, base.Add(2 * time.Hour), true},
		{"contained window", base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"straddles start", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"straddles end", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"back to back before", base.Add(-2 * time.Hour), base, false},
		{"back to back after", base.Add(2 * time.Hour), base.Add(4 * time.Hour), false},
		{"fully before", base.Add(-3 * time.Hour), base.Add(-time.Hour), false},
		{"fully after", base.Add(3 * time.Hour), base.Add(5 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, booking.Overlaps(tt.start, tt.end))
		})
	}
}
