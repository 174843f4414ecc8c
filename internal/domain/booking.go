package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WellnessService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// BlockIdentityRef is the reserved identity_ref value for an administrative
// slot block. A booking carrying it is not a person: it exhausts the whole
// slot capacity by convention and is never exposed in public listings.
const BlockIdentityRef = "SYSTEM_BLOCK"

// Booking represents a reserved wellness session slot
type Booking struct {
	ID          uuid.UUID
	Date        time.Time // calendar day, time component zeroed
	StartTime   types.TimeString
	IdentityRef string // one-way digest of the employee identity, or BlockIdentityRef
	DisplayName string
	GroupTag    string
	Status      BookingStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsBlock returns true if the booking is an administrative slot block
func (b *Booking) IsBlock() bool {
	return b.IdentityRef == BlockIdentityRef
}

// AgendaFilter фильтр для выборки бронирований администратором
type AgendaFilter struct {
	From            *time.Time // Начало периода (опционально, если nil - без ограничения)
	To              *time.Time // Конец периода (опционально, если nil - без ограничения)
	IncludeInactive bool       // Включать ли отмененные бронирования
}
