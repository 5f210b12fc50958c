package main

import (
	bookingsevents "staybook/internal/bookings/events"
	bookingshandler "staybook/internal/bookings/handler"
	bookingsrepo "staybook/internal/bookings/repository"
	bookingsservice "staybook/internal/bookings/service"
	"staybook/internal/bookings/validator"
	"staybook/internal/listings/cache"
	listingshandler "staybook/internal/listings/handler"
	listingsrepo "staybook/internal/listings/repository"
	listingsservice "staybook/internal/listings/service"
	"staybook/pkg/app"
	"staybook/pkg/config"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
	kafkamiddleware "staybook/pkg/kafka/middleware"
)

const ServiceName = "staybook-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Staybook API")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	listingService := initListingService(cfg)
	bookingService := initBookingService(cfg, publisher)

	serverApp.SetApp(
		listingshandler.NewListingHandler(listingService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}

func initListingService(cfg *config.Config) listingsservice.ListingService {
	var listingCache cache.ListingCache
	if cfg.Client.Redis != nil {
		listingCache = cache.NewRedisListingCache(cfg.Client.Redis, cfg.ListingCacheTTL)
	}

	listingService := listingsservice.NewListingService(
		listingsrepo.NewMongoListingRepository(cfg),
		listingCache,
		cfg,
	)

	cfg.Log.Info("Listing service initialized", "cache", listingCache != nil)
	return listingService
}

func initBookingService(cfg *config.Config, publisher bookingsevents.Publisher) bookingsservice.BookingService {
	var lockRepo bookingsrepo.BookingLockRepository
	if cfg.BookingLockEnabled {
		lockRepo = bookingsrepo.NewMongoBookingLockRepository(cfg)
	}

	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		lockRepo,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"booking_lock", cfg.BookingLockEnabled,
	)
	return bookingService
}

// initPublisher returns a no-op publisher unless events are enabled.
func initPublisher(cfg *config.Config, serverApp *app.Application) bookingsevents.Publisher {
	if !cfg.EventsEnabled {
		return bookingsevents.NewNoopPublisher()
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingTopic, cfg.BookingDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	metrics := kafkamiddleware.NewMetrics()
	producer.Use(kafkamiddleware.MetricsProducerMiddleware(metrics))
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	serverApp.OnShutdown(func() {
		metrics.LogSummary(cfg.Log, cfg.BookingTopic)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return bookingsevents.NewKafkaPublisher(producer)
}
