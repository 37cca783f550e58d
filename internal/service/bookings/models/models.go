package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// Request модели

// CreateBookingRequest запрос на создание бронирования.
// Владелец и статус не принимаются от клиента: владельцем всегда
// становится аутентифицированный пользователь, статус - Booked
type CreateBookingRequest struct {
	VehicleMake     string
	Model           string
	Year            int
	Mileage         int
	VIN             string
	ServiceType     string
	AppointmentDate time.Time
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customerId"`
	VehicleMake     string    `json:"vehicleMake"`
	Model           string    `json:"model"`
	Year            int       `json:"year"`
	Mileage         int       `json:"mileage"`
	VIN             string    `json:"vin"`
	ServiceType     string    `json:"serviceType"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Status          string    `json:"status"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
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

	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		VehicleMake:     b.VehicleMake,
		Model:           b.Model,
		Year:            b.Year,
		Mileage:         b.Mileage,
		VIN:             b.VIN,
		ServiceType:     b.ServiceType,
		AppointmentDate: b.AppointmentDate,
		Status:          string(b.Status),
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
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
