package bootstrap

import (
	"context"
	"log"

	"client-retention-be/internal/config"
	"client-retention-be/internal/controller"
	"client-retention-be/internal/handler"
	"client-retention-be/internal/pkg/logger"
	"client-retention-be/internal/pkg/mailer"
	"client-retention-be/internal/repository/implementation"
	"client-retention-be/internal/repository/memory"
	"client-retention-be/internal/repository/unitofwork"
	"client-retention-be/internal/service"
	"client-retention-be/internal/websocket"

	pktNats "client-retention-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	ClientController    controller.IClientController
	AnalyticsController controller.IAnalyticsController

	// Background services (exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event bus (in-process work queue)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	loginAttempts := memory.NewLoginAttemptRepository()

	authService := service.NewAuthService(uowFactory, pubSub, cfg.App.WelcomeEmailTopic, loginAttempts, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, cfg, sysLogger)
	clientService := service.NewClientService(uowFactory)
	analyticsService := service.NewAnalyticsService(uowFactory)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.WelcomeEmailTopic,
		emailService,
		sysLogger,
	)

	// 3.5 Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService, natsPub, sysLogger),
		OAuthController:     controller.NewOAuthController(oauthService, cfg),
		ClientController:    controller.NewClientController(clientService, natsPub, sysLogger),
		AnalyticsController: controller.NewAnalyticsController(analyticsService),

		ConsumerService:     consumerService,
		NotificationService: notifService,

		NotificationHandler: handler.NewNotificationHandler(notifService, wsHub, wsLogger),
		WebSocketHub:        wsHub,
	}
}
