package models

import (
	"time"

	"github.com/m04kA/SMC-WellnessService/internal/domain"
	"github.com/m04kA/SMC-WellnessService/pkg/ptr"
)

// Request модели

// CancelBookingRequest запрос сотрудника на отмену бронирования.
// Identity - сырой идентификатор, digest вычисляется на сервере.
type CancelBookingRequest struct {
	Identity string `json:"identity"`
}

// LookupRequest запрос на поиск активных бронирований сотрудника
type LookupRequest struct {
	Identity string `json:"identity"`
}

// AgendaRequest запрос административного списка бронирований за период
type AgendaRequest struct {
	From            *time.Time
	To              *time.Time
	IncludeInactive bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"

	DisplayName string `json:"displayName"`
	GroupTag    string `json:"groupTag,omitempty"`
	Status      string `json:"status"`
	IsBlock     bool   `json:"isBlock,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID.String(),
		Date:        b.Date.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		DisplayName: b.DisplayName,
		GroupTag:    b.GroupTag,
		Status:      string(b.Status),
		IsBlock:     b.IsBlock(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
