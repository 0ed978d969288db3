package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pinpoint-be/internal/config"
	"pinpoint-be/internal/controller"
	"pinpoint-be/internal/handler"
	"pinpoint-be/internal/pkg/logger"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/internal/service"
	"pinpoint-be/internal/websocket"
	"pinpoint-be/pkg/aiclient"
	pkgNats "pinpoint-be/pkg/nats"
	"pinpoint-be/pkg/sessioncode"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	MessageController controller.IMessageController
	ResultController  controller.IResultController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	SubscriptionService *service.SubscriptionService

	// WebSockets
	SubscriptionHandler *handler.SubscriptionHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/subscription.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	aiClient := aiclient.NewClient(cfg.Ai.URL)
	codeGenerator := sessioncode.NewDefaultGenerator()

	publisherService := service.NewPublisherService(pubSub, cfg.Ai.JobTopic)
	resultService := service.NewResultService(uowFactory, natsPub, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.JobTopic,
		uowFactory,
		aiClient,
		resultService,
		cfg.Ai.Timeout,
	)

	sessionService := service.NewSessionService(uowFactory, codeGenerator, natsPub, sysLogger)
	messageService := service.NewMessageService(uowFactory, publisherService, natsPub, sysLogger)

	// 3.5 Subscription System
	subscriptionService := service.NewSubscriptionService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go subscriptionService.Start()
	}

	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, uowFactory, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		MessageController: controller.NewMessageController(messageService),
		ResultController:  controller.NewResultController(resultService),

		ConsumerService:     consumerService,
		SubscriptionService: subscriptionService,

		SubscriptionHandler: subscriptionHandler,
		WebSocketHub:        wsHub,
	}
}
