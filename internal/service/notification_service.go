package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"client-retention-be/internal/model"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/repository"
	"client-retention-be/pkg/events"
	pktNats "client-retention-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. Without a bus connection the
// service stays idle; the rest of the app runs degraded instead of dying.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus connection, notifications disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	switch event.EventType() {
	case events.TypeCancellationRecorded:
		return s.handleCancellationRecorded(ctx, event)
	case events.TypeUserRegistered:
		return s.handleUserRegistered(ctx, event)
	default:
		// Unknown events are acked, not retried.
		return nil
	}
}

func (s *NotificationService) handleCancellationRecorded(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	ownerId, err := parseUUIDField(payload, "owner_id")
	if err != nil {
		s.logger.Warn("NotificationService", "Cancellation event without valid owner_id", map[string]interface{}{"error": err.Error()})
		return nil
	}

	clientName, _ := payload["client_name"].(string)
	accepted, _ := payload["accepted"].(bool)

	title := "Client cancelled"
	message := fmt.Sprintf("%s declined the retention offer and cancelled their subscription.", clientName)
	if accepted {
		title = "Client retained"
		message = fmt.Sprintf("%s accepted the retention offer and stays active.", clientName)
	}

	notif := s.buildNotification(ownerId, event.EventType(), title, message, payload)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(ownerId, notif)
	}
	return nil
}

func (s *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userId, err := parseUUIDField(payload, "user_id")
	if err != nil {
		s.logger.Warn("NotificationService", "Registration event without valid user_id", map[string]interface{}{"error": err.Error()})
		return nil
	}

	fullName, _ := payload["full_name"].(string)
	notif := s.buildNotification(userId, event.EventType(),
		"Welcome to RetainDesk",
		fmt.Sprintf("Hi %s, your account is ready. Add your first client to start tracking retention.", fullName),
		payload,
	)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}
	return nil
}

func (s *NotificationService) buildNotification(userId uuid.UUID, typeCode, title, message string, payload map[string]interface{}) model.Notification {
	metaJSON, _ := json.Marshal(payload)

	return model.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  datatypes.JSON(metaJSON),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

func parseUUIDField(payload map[string]interface{}, key string) (uuid.UUID, error) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing field %q", key)
	}
	return uuid.Parse(raw)
}

// --- User-facing API ---

func (s *NotificationService) GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userId, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userId)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationId)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userId)
}
