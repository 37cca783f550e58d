package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	userClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
	"github.com/m04kA/SMC-WorkshopService/internal/service/bookings/models"
)

// --- моки ---

type mockBookingRepo struct {
	createFn func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	getFn    func(ctx context.Context, id int64) (*domain.Booking, error)
	listFn   func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	deleteFn func(ctx context.Context, id int64) error

	deleteCalls int
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return m.listFn(ctx, filter)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBookingRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

type mockUserClient struct {
	getUserFn func(ctx context.Context, userID string) (*userClient.User, error)
}

func (m *mockUserClient) GetUser(ctx context.Context, userID string) (*userClient.User, error) {
	return m.getUserFn(ctx, userID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validCreateRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		VehicleMake:     "Toyota",
		Model:           "Corolla",
		Year:            2020,
		Mileage:         45000,
		VIN:             "JTDBU4EE9A9123456",
		ServiceType:     "Brakes",
		AppointmentDate: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
	}
}

// --- ResolveActor ---

func TestResolveActor_Admin(t *testing.T) {
	users := &mockUserClient{
		getUserFn: func(ctx context.Context, userID string) (*userClient.User, error) {
			return &userClient.User{ID: userID, Role: userClient.RoleAdmin}, nil
		},
	}
	svc := NewService(&mockBookingRepo{}, users, nopLogger{})

	actor, err := svc.ResolveActor(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", actor.ID)
	assert.True(t, actor.IsAdmin)
}

func TestResolveActor_UnknownUser(t *testing.T) {
	users := &mockUserClient{
		getUserFn: func(ctx context.Context, userID string) (*userClient.User, error) {
			return nil, userClient.ErrUserNotFound
		},
	}
	svc := NewService(&mockBookingRepo{}, users, nopLogger{})

	_, err := svc.ResolveActor(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestResolveActor_UserServiceDown(t *testing.T) {
	users := &mockUserClient{
		getUserFn: func(ctx context.Context, userID string) (*userClient.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(&mockBookingRepo{}, users, nopLogger{})

	_, err := svc.ResolveActor(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrInternal)
}

// --- Create ---

func TestCreate_ForcesOwnerAndStatus(t *testing.T) {
	var saved *domain.Booking
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			saved = booking
			out := *booking
			out.ID = 7
			out.Version = 1
			return &out, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	resp, err := svc.Create(context.Background(), Actor{ID: "user-42"}, validCreateRequest())
	require.NoError(t, err)

	// Владелец и статус проставлены сервером
	assert.Equal(t, "user-42", saved.CustomerID)
	assert.Equal(t, domain.StatusBooked, saved.Status)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "user-42", resp.CustomerID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, int64(1), resp.Version)
}

func TestCreate_ValidationErrors(t *testing.T) {
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			t.Fatal("repository must not be called on invalid input")
			return nil, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})
	actor := Actor{ID: "user-42"}

	req := validCreateRequest()
	req.VehicleMake = "  "
	_, err := svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.Year = 1930
	_, err = svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.Mileage = -1
	_, err = svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.VIN = "JTDBU4EE9A9123456XXXX"
	_, err = svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.ServiceType = "Detailing"
	_, err = svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validCreateRequest()
	req.AppointmentDate = time.Time{}
	_, err = svc.Create(context.Background(), actor, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- List ---

func TestList_NonAdminScopedToOwnBookings(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &mockBookingRepo{
		listFn: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			gotFilter = filter
			return []*domain.Booking{{ID: 1, CustomerID: "user-42"}}, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	resp, err := svc.List(context.Background(), Actor{ID: "user-42"}, &models.ListBookingsRequest{})
	require.NoError(t, err)

	require.NotNil(t, gotFilter.CustomerID)
	assert.Equal(t, "user-42", *gotFilter.CustomerID)
	assert.Len(t, resp.Bookings, 1)
}

func TestList_AdminSeesAll(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &mockBookingRepo{
		listFn: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			gotFilter = filter
			return []*domain.Booking{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	resp, err := svc.List(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, &models.ListBookingsRequest{})
	require.NoError(t, err)

	assert.Nil(t, gotFilter.CustomerID)
	assert.Len(t, resp.Bookings, 2)
}

func TestList_StatusFilter(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &mockBookingRepo{
		listFn: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	status := "done"
	_, err := svc.List(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, &models.ListBookingsRequest{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusDone, *gotFilter.Status)

	bad := "Finished"
	_, err = svc.List(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, &models.ListBookingsRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- GetByID ---

func TestGetByID_OwnerAndAdminAccess(t *testing.T) {
	repo := &mockBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return &domain.Booking{ID: id, CustomerID: "user-42"}, nil
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	// Владелец видит свою запись
	resp, err := svc.GetByID(context.Background(), Actor{ID: "user-42"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "user-42", resp.CustomerID)

	// Администратор видит чужую запись
	_, err = svc.GetByID(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, 1)
	require.NoError(t, err)

	// Чужой клиент - нет
	_, err = svc.GetByID(context.Background(), Actor{ID: "user-43"}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// --- Delete ---

func TestDelete_AdminOnly(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})

	err := svc.Delete(context.Background(), Actor{ID: "user-42"}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.deleteCalls)

	err = svc.Delete(context.Background(), Actor{ID: "admin-1", IsAdmin: true}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestDelete_Idempotent(t *testing.T) {
	// Репозиторий не возвращает ошибку для отсутствующего ID,
	// повторное удаление тоже успешно
	repo := &mockBookingRepo{}
	svc := NewService(repo, &mockUserClient{}, nopLogger{})
	admin := Actor{ID: "admin-1", IsAdmin: true}

	require.NoError(t, svc.Delete(context.Background(), admin, 999))
	require.NoError(t, svc.Delete(context.Background(), admin, 999))
	assert.Equal(t, 2, repo.deleteCalls)
}
