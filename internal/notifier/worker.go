package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	userClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/userservice"
)

const (
	completionSubject = "Your Car Service is Completed"

	resultSent    = "sent"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

// Config настройки воркера
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Worker фоновый обработчик outbox-таблицы уведомлений.
// Забирает порции необработанных строк, резолвит email владельца через
// UserService и отправляет письмо о завершении работ. Ошибки отправки
// повторяются до исчерпания попыток и никогда не влияют на HTTP-запросы
type Worker struct {
	cfg        Config
	outboxRepo OutboxRepository
	userClient UserServiceClient
	sender     EmailSender
	metrics    MetricsRecorder // может быть nil, если метрики выключены
	logger     Logger
}

// NewWorker создает воркер уведомлений
func NewWorker(
	cfg Config,
	outboxRepo OutboxRepository,
	userClient UserServiceClient,
	sender EmailSender,
	metrics MetricsRecorder,
	logger Logger,
) *Worker {
	return &Worker{
		cfg:        cfg,
		outboxRepo: outboxRepo,
		userClient: userClient,
		sender:     sender,
		metrics:    metrics,
		logger:     logger,
	}
}

// Run запускает цикл обработки. Блокирует до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Notifier: worker started (interval=%s, batch=%d, max_attempts=%d)",
		w.cfg.PollInterval, w.cfg.BatchSize, w.cfg.MaxAttempts)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Notifier: worker stopped")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch обрабатывает одну порцию необработанных уведомлений
func (w *Worker) ProcessBatch(ctx context.Context) {
	notifications, err := w.outboxRepo.FetchPending(ctx, w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("Notifier: failed to fetch pending notifications: %v", err)
		return
	}

	for _, n := range notifications {
		w.process(ctx, n)
	}
}

func (w *Worker) process(ctx context.Context, n *domain.Notification) {
	user, err := w.userClient.GetUser(ctx, n.CustomerID)
	if err != nil {
		// Владелец не найден - молчаливый пропуск, не ошибка
		if errors.Is(err, userClient.ErrUserNotFound) {
			w.skip(ctx, n, "customer not found")
			return
		}
		// UserService недоступен - попробуем в следующем цикле
		w.fail(ctx, n, fmt.Sprintf("resolve customer: %v", err))
		return
	}

	if user.Email == "" {
		w.skip(ctx, n, "customer has no email")
		return
	}

	body := fmt.Sprintf(
		"Hello %s,<br/>Your vehicle (%s %s) is now serviced and ready for pickup.<br/><br/>Thank you!",
		user.DisplayName, n.VehicleMake, n.VehicleModel,
	)

	if err := w.sender.Send(user.Email, completionSubject, body); err != nil {
		w.fail(ctx, n, fmt.Sprintf("send email: %v", err))
		return
	}

	if err := w.outboxRepo.MarkSent(ctx, n.ID); err != nil {
		w.logger.Error("Notifier: failed to mark notification id=%d as sent: %v", n.ID, err)
		return
	}

	w.record(resultSent)
	w.logger.Info("Notifier: completion email sent for booking id=%d to customer=%s",
		n.BookingID, n.CustomerID)
}

func (w *Worker) skip(ctx context.Context, n *domain.Notification, reason string) {
	if err := w.outboxRepo.MarkSkipped(ctx, n.ID, reason); err != nil {
		w.logger.Error("Notifier: failed to mark notification id=%d as skipped: %v", n.ID, err)
		return
	}
	w.record(resultSkipped)
	w.logger.Warn("Notifier: notification id=%d for booking id=%d skipped: %s", n.ID, n.BookingID, reason)
}

func (w *Worker) fail(ctx context.Context, n *domain.Notification, sendErr string) {
	if err := w.outboxRepo.MarkAttemptFailed(ctx, n.ID, sendErr, w.cfg.MaxAttempts); err != nil {
		w.logger.Error("Notifier: failed to record failed attempt for notification id=%d: %v", n.ID, err)
		return
	}
	w.record(resultFailed)
	w.logger.Error("Notifier: attempt %d/%d failed for notification id=%d (booking id=%d): %s",
		n.Attempts+1, w.cfg.MaxAttempts, n.ID, n.BookingID, sendErr)
}

func (w *Worker) record(result string) {
	if w.metrics != nil {
		w.metrics.IncNotification(result)
	}
}
