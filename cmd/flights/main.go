package main

import (
	"context"

	"aerovoyage/internal/flights/handler"
	"aerovoyage/internal/flights/repository"
	"aerovoyage/internal/flights/service"
	"aerovoyage/internal/flights/validator"
	"aerovoyage/internal/pricing"
	pricingrepo "aerovoyage/internal/pricing/repository"
	"aerovoyage/pkg/app"
	"aerovoyage/pkg/config"
	"aerovoyage/pkg/kafka"
	kafka_config "aerovoyage/pkg/kafka/config"
	kafka_middleware "aerovoyage/pkg/kafka/middleware"
	"aerovoyage/pkg/kv"
)

const ServiceName = "flights"

// @title AeroVoyage Flights API
// @version 1.0
// @description API documentation for the Flights microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Flights service")

	store, err := kv.NewBadgerStore(cfg.ActivityStoreDir, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to open activity store", "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			cfg.Log.Error("Failed to close activity store", "error", err)
		}
	}()

	engine := pricing.NewEngine(pricingrepo.NewMongoActivityRepository(cfg), store, cfg.Log)

	consumer := startBookingConsumer(cfg, engine)
	defer func() {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close booking events consumer", "error", err)
		}
	}()

	flightService := initServices(cfg, engine)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFlightHandler(flightService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, engine *pricing.Engine) service.FlightService {
	flightValidator := validator.NewFlightValidator(cfg.Log)
	flightRepo := repository.NewMongoFlightRepository(cfg)
	flightService := service.NewFlightService(
		flightRepo,
		flightValidator,
		engine,
		cfg,
	)

	cfg.Log.Info("Flights service initialized", "database", cfg.MongoDatabaseName)
	return flightService
}

// startBookingConsumer subscribes the demand engine to confirmed-booking
// events so remote bookings count toward escalation without polling.
func startBookingConsumer(cfg *config.Config, engine *pricing.Engine) *kafka.Consumer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Failed to load Kafka configuration", "error", err)
	}

	eventHandler := pricing.NewBookingEventHandler(engine, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.BookingEventsGroupID,
		cfg.BookingEventsDLQTopic,
		eventHandler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking events consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			cfg.Log.Error("Booking events consumer stopped", "error", err)
		}
	}()

	return consumer
}
