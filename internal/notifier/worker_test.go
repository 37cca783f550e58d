package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	userClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
)

// --- моки ---

type mockOutboxRepo struct {
	pending []*domain.Notification

	sent    []int64
	skipped map[int64]string
	failed  map[int64]string
}

func newMockOutboxRepo(pending ...*domain.Notification) *mockOutboxRepo {
	return &mockOutboxRepo{
		pending: pending,
		skipped: make(map[int64]string),
		failed:  make(map[int64]string),
	}
}

func (m *mockOutboxRepo) FetchPending(ctx context.Context, limit int) ([]*domain.Notification, error) {
	if len(m.pending) > limit {
		return m.pending[:limit], nil
	}
	return m.pending, nil
}

func (m *mockOutboxRepo) MarkSent(ctx context.Context, id int64) error {
	m.sent = append(m.sent, id)
	return nil
}

func (m *mockOutboxRepo) MarkSkipped(ctx context.Context, id int64, reason string) error {
	m.skipped[id] = reason
	return nil
}

func (m *mockOutboxRepo) MarkAttemptFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error {
	m.failed[id] = sendErr
	return nil
}

type mockUserClient struct {
	users map[string]*userClient.User
	err   error
}

func (m *mockUserClient) GetUser(ctx context.Context, userID string) (*userClient.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return user, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockSender struct {
	sent []sentMail
	err  error
}

func (m *mockSender) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testConfig() Config {
	return Config{BatchSize: 20, MaxAttempts: 5}
}

func pendingNotification() *domain.Notification {
	return &domain.Notification{
		ID:           1,
		BookingID:    10,
		CustomerID:   "user-42",
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		Status:       domain.NotificationPending,
	}
}

// --- тесты ---

func TestProcessBatch_SendsCompletionEmail(t *testing.T) {
	outbox := newMockOutboxRepo(pendingNotification())
	users := &mockUserClient{users: map[string]*userClient.User{
		"user-42": {ID: "user-42", Email: "ivan@example.com", DisplayName: "Ivan"},
	}}
	sender := &mockSender{}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, "ivan@example.com", mail.to)
	assert.Contains(t, mail.subject, "Completed")
	assert.Contains(t, mail.body, "Ivan")
	assert.Contains(t, mail.body, "Toyota Corolla")

	assert.Equal(t, []int64{1}, outbox.sent)
	assert.Empty(t, outbox.skipped)
	assert.Empty(t, outbox.failed)
}

func TestProcessBatch_SkipsWhenCustomerNotFound(t *testing.T) {
	outbox := newMockOutboxRepo(pendingNotification())
	users := &mockUserClient{users: map[string]*userClient.User{}}
	sender := &mockSender{}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	// Отсутствие владельца - молчаливый пропуск, не ошибка
	assert.Empty(t, sender.sent)
	assert.Empty(t, outbox.sent)
	assert.Empty(t, outbox.failed)
	assert.Contains(t, outbox.skipped[1], "not found")
}

func TestProcessBatch_SkipsWhenNoEmail(t *testing.T) {
	outbox := newMockOutboxRepo(pendingNotification())
	users := &mockUserClient{users: map[string]*userClient.User{
		"user-42": {ID: "user-42", Email: "", DisplayName: "Ivan"},
	}}
	sender := &mockSender{}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Empty(t, sender.sent)
	assert.Contains(t, outbox.skipped[1], "no email")
}

func TestProcessBatch_RetriesOnUserServiceError(t *testing.T) {
	outbox := newMockOutboxRepo(pendingNotification())
	users := &mockUserClient{err: errors.New("connection refused")}
	sender := &mockSender{}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	// Недоступность UserService - не пропуск, попытка будет повторена
	assert.Empty(t, sender.sent)
	assert.Empty(t, outbox.skipped)
	assert.Contains(t, outbox.failed[1], "resolve customer")
}

func TestProcessBatch_RecordsFailedSendAttempt(t *testing.T) {
	outbox := newMockOutboxRepo(pendingNotification())
	users := &mockUserClient{users: map[string]*userClient.User{
		"user-42": {ID: "user-42", Email: "ivan@example.com", DisplayName: "Ivan"},
	}}
	sender := &mockSender{err: errors.New("smtp: connection timed out")}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Empty(t, outbox.sent)
	assert.Contains(t, outbox.failed[1], "send email")
}

func TestProcessBatch_ProcessesWholeBatch(t *testing.T) {
	second := pendingNotification()
	second.ID = 2
	second.CustomerID = "ghost"

	outbox := newMockOutboxRepo(pendingNotification(), second)
	users := &mockUserClient{users: map[string]*userClient.User{
		"user-42": {ID: "user-42", Email: "ivan@example.com", DisplayName: "Ivan"},
	}}
	sender := &mockSender{}

	w := NewWorker(testConfig(), outbox, users, sender, nil, nopLogger{})
	w.ProcessBatch(context.Background())

	// Пропуск одного уведомления не останавливает обработку остальных
	assert.Equal(t, []int64{1}, outbox.sent)
	assert.Contains(t, outbox.skipped[2], "not found")
}
