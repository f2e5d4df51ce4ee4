package service

import (
	"context"
	"encoding/json"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the welcome-mail work queue so SMTP latency never
// sits on the registration request path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var task dto.WelcomeEmailTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal mail task", map[string]interface{}{"error": err.Error()})
		// Ack malformed payloads to prevent infinite retry.
		msg.Ack()
		return
	}

	if err := cs.emailService.SendWelcome(task.Email, task.FullName); err != nil {
		cs.logger.Error("ConsumerService", "Failed to send welcome mail", map[string]interface{}{"error": err.Error(), "email": task.Email})
		msg.Nack()
		return
	}

	cs.logger.Info("ConsumerService", "Welcome mail sent", map[string]interface{}{"email": task.Email})
	msg.Ack()
}
