package domain

import "github.com/m04kA/SMC-WellnessService/pkg/types"

// AvailableSlot represents a bookable time slot on a given day
type AvailableSlot struct {
	StartTime      types.TimeString
	AvailableSpots int // Remaining capacity
	TotalSpots     int // Capacity per the schedule rule
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}

// IsFullyAvailable returns true if all spots are available
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailableSpots == s.TotalSpots
}
