package domain

import "time"

// Booking represents a car service booking in the workshop
type Booking struct {
	ID              int64
	CustomerID      string // ID владельца в UserService, всегда проставляется сервером
	VehicleMake     string
	Model           string
	Year            int
	Mileage         int
	VIN             string
	ServiceType     string
	AppointmentDate time.Time
	Status          BookingStatus

	// Optimistic concurrency token, bumped on every successful update
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the booking belongs to the given customer
func (b *Booking) IsOwnedBy(customerID string) bool {
	return b.CustomerID == customerID
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	CustomerID *string        // nil - без фильтра по владельцу (админский список)
	Status     *BookingStatus // nil - все статусы
}
