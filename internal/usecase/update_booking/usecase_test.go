package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
)

// --- моки ---

type mockBookingRepo struct {
	getFn    func(ctx context.Context, id int64) (*domain.Booking, error)
	updateFn func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.updateFn(ctx, booking)
}

func (m *mockBookingRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type mockOutboxRepo struct {
	enqueued []*domain.Notification
	err      error
}

func (m *mockOutboxRepo) Enqueue(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.enqueued = append(m.enqueued, n)
	out := *n
	out.ID = int64(len(m.enqueued))
	return &out, nil
}

// inlineTxManager выполняет функцию без настоящей транзакции
type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var admin = bookings.Actor{ID: "admin-1", IsAdmin: true}

func storedBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              10,
		CustomerID:      "user-42",
		VehicleMake:     "Toyota",
		Model:           "Corolla",
		Year:            2020,
		Mileage:         45000,
		VIN:             "JTDBU4EE9A9123456",
		ServiceType:     "Brakes",
		AppointmentDate: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:          status,
		Version:         3,
	}
}

func validRequest(status domain.BookingStatus) *Request {
	return &Request{
		PathID:          10,
		ID:              10,
		CustomerID:      "user-42",
		VehicleMake:     "Toyota",
		Model:           "Corolla",
		Year:            2020,
		Mileage:         45000,
		VIN:             "JTDBU4EE9A9123456",
		ServiceType:     "Brakes",
		AppointmentDate: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:          status,
		Version:         3,
	}
}

func repoReturningStored(status domain.BookingStatus) *mockBookingRepo {
	return &mockBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return storedBooking(status), nil
		},
		updateFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			out := *booking
			out.Version = booking.Version + 1
			return &out, nil
		},
	}
}

// --- тесты ---

func TestExecute_NonAdminDenied(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), bookings.Actor{ID: "user-42"}, validRequest(domain.StatusDone))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_IDMismatch(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	req := validRequest(domain.StatusDone)
	req.PathID = 11

	_, err := uc.Execute(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrIDMismatch)
}

func TestExecute_BookingGone(t *testing.T) {
	repo := &mockBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	uc := NewUseCase(repo, &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusDone))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidTransition(t *testing.T) {
	uc := NewUseCase(repoReturningStored(domain.StatusCancelled), &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	// Cancelled - терминальный статус, обратно в Booked нельзя
	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusBooked))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_TransitionToDoneEnqueuesNotification(t *testing.T) {
	outbox := &mockOutboxRepo{}
	uc := NewUseCase(repoReturningStored(domain.StatusInProgress), outbox, inlineTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusDone))
	require.NoError(t, err)

	require.Len(t, outbox.enqueued, 1)
	n := outbox.enqueued[0]
	assert.Equal(t, int64(10), n.BookingID)
	assert.Equal(t, "user-42", n.CustomerID)
	assert.Equal(t, "Toyota", n.VehicleMake)
	assert.Equal(t, "Corolla", n.VehicleModel)

	assert.Equal(t, string(domain.StatusDone), resp.Status)
	assert.Equal(t, int64(4), resp.Version)
}

func TestExecute_NonDoneUpdateDoesNotEnqueue(t *testing.T) {
	outbox := &mockOutboxRepo{}
	uc := NewUseCase(repoReturningStored(domain.StatusBooked), outbox, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusInProgress))
	require.NoError(t, err)

	assert.Empty(t, outbox.enqueued)
}

func TestExecute_ResaveDoneDoesNotEnqueueAgain(t *testing.T) {
	// Пересохранение уже завершенной записи письма не дублирует
	outbox := &mockOutboxRepo{}
	uc := NewUseCase(repoReturningStored(domain.StatusDone), outbox, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusDone))
	require.NoError(t, err)

	assert.Empty(t, outbox.enqueued)
}

func TestExecute_VersionConflict_RecordStillExists(t *testing.T) {
	repo := repoReturningStored(domain.StatusInProgress)
	repo.updateFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		return nil, bookingRepo.ErrVersionConflict
	}
	repo.existsFn = func(ctx context.Context, id int64) (bool, error) {
		return true, nil
	}
	uc := NewUseCase(repo, &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusDone))
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestExecute_VersionConflict_RecordGone(t *testing.T) {
	// Запись удалили во время конкурентного редактирования:
	// конфликт схлопывается в not found
	repo := repoReturningStored(domain.StatusInProgress)
	repo.updateFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		return nil, bookingRepo.ErrVersionConflict
	}
	repo.existsFn = func(ctx context.Context, id int64) (bool, error) {
		return false, nil
	}
	uc := NewUseCase(repo, &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), admin, validRequest(domain.StatusDone))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(repoReturningStored(domain.StatusBooked), &mockOutboxRepo{}, inlineTxManager{}, nopLogger{})

	req := validRequest(domain.StatusInProgress)
	req.VIN = ""
	_, err := uc.Execute(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(domain.StatusInProgress)
	req.CustomerID = ""
	_, err = uc.Execute(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
