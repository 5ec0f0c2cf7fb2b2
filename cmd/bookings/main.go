package main

import (
	"github.com/julienschmidt/httprouter"

	bookinghandler "aerovoyage/internal/bookings/handler"
	bookingrepo "aerovoyage/internal/bookings/repository"
	bookingservice "aerovoyage/internal/bookings/service"
	bookingvalidator "aerovoyage/internal/bookings/validator"
	wallethandler "aerovoyage/internal/wallet/handler"
	walletrepo "aerovoyage/internal/wallet/repository"
	walletservice "aerovoyage/internal/wallet/service"
	"aerovoyage/pkg/app"
	"aerovoyage/pkg/client"
	"aerovoyage/pkg/config"
	"aerovoyage/pkg/contracts"
	"aerovoyage/pkg/kafka"
	kafka_config "aerovoyage/pkg/kafka/config"
	kafka_middleware "aerovoyage/pkg/kafka/middleware"
)

const ServiceName = "bookings"

// compositeHandler mounts several route groups on one router. The bookings
// service also serves the wallet API, both live in the same transaction scope.
type compositeHandler []contracts.Handler

func (h compositeHandler) RegisterRoutes(router *httprouter.Router) {
	for _, handler := range h {
		handler.RegisterRoutes(router)
	}
}

// @title AeroVoyage Bookings API
// @version 1.0
// @description API documentation for the Bookings microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer := newBookingProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close booking events producer", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initServices(cfg, producer))
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) contracts.Handler {
	walletService := walletservice.NewWalletService(walletrepo.NewMongoWalletRepository(cfg), cfg)

	bookingValidator := bookingvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	flightsClient := client.NewFlightsClient(cfg.FlightsServiceURL)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingValidator,
		flightsClient,
		walletService,
		producer,
		cfg,
	)

	cfg.Log.Info("Bookings service initialized", "database", cfg.MongoDatabaseName)
	return compositeHandler{
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		wallethandler.NewWalletHandler(walletService, cfg.Log),
	}
}

func newBookingProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Failed to load Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking events producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())
	return producer
}
