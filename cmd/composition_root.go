package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/geocoding"
	"lastmile/internal/adapters/out/kafka"
	"lastmile/internal/adapters/out/photostore"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/telegram"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"
	"lastmile/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Registry
	logger     *slog.Logger

	window    delivery.TimeWindow
	geofence  services.Geofence
	geocoder  ports.Geocoder
	photos    *photostore.FileSystemStorage
	notifiers []ports.Notifier
	publisher *kafka.Publisher
}

// NewCompositionRoot builds the outbound adapters from cfg. Telegram is only
// wired when a bot token is configured and Kafka only when brokers are.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, registry *metrics.Registry, logger *slog.Logger) (*CompositionRoot, error) {
	window := delivery.TimeWindow{ETAOffset: cfg.DeliveryETAOffset, MaxDuration: cfg.DeliveryMaxWindow}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("delivery time window: %w", err)
	}
	geofence, err := services.NewGeofence(cfg.GeofenceRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("geofence: %w", err)
	}
	photos, err := photostore.NewFileSystemStorage(cfg.UploadDir, cfg.UploadPublicPrefix)
	if err != nil {
		return nil, fmt.Errorf("photo storage: %w", err)
	}

	retry := geocoding.DefaultRetryConfig()
	retry.MaxAttempts = cfg.GeocoderMaxAttempts
	geocoder := geocoding.NewRetryingGeocoder(
		geocoding.NewNominatimGeocoder(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout),
		logger.With("component", "Geocoder"),
		registry.GeocoderRetries,
		retry,
	)

	var notifiers []ports.Notifier
	if cfg.TelegramBotToken != "" {
		notifiers = append(notifiers, telegram.NewNotifier(telegram.Config{
			APIURL:        cfg.TelegramAPIURL,
			Token:         cfg.TelegramBotToken,
			PublicBaseURL: cfg.PublicBaseURL,
		}, photos, logger.With("component", "TelegramNotifier")))
	} else {
		logger.Warn("telegram bot token not set, client notifications are disabled")
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaDeliveryEventsTopic)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	if publisher != nil {
		notifiers = append(notifiers, publisher)
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    registry,
		logger:     logger,
		window:     window,
		geofence:   geofence,
		geocoder:   geocoder,
		photos:     photos,
		notifiers:  notifiers,
		publisher:  publisher,
	}, nil
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.window)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	return commands.NewChangeDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRegisterHidingSpotCommandHandler() commands.RegisterHidingSpotCommandHandler {
	return commands.NewRegisterHidingSpotCommandHandler(c.deliveryUoWFactory(), c.geocoder, c.photos, c.geofence, c.logger)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDriverStockCommandHandler() commands.UpdateDriverStockCommandHandler {
	return commands.NewUpdateDriverStockCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateProductCommandHandler() commands.DeactivateProductCommandHandler {
	return commands.NewDeactivateProductCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.notifiers, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryReportQueryHandler() queries.GetDeliveryReportQueryHandler {
	return queries.NewGetDeliveryReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverInventoryQueryHandler() queries.GetDriverInventoryQueryHandler {
	return queries.NewGetDriverInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDriversQueryHandler() queries.ListDriversQueryHandler {
	return queries.NewListDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListClientsQueryHandler() queries.ListClientsQueryHandler {
	return queries.NewListClientsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueDeliveriesQueryHandler() queries.GetOverdueDeliveriesQueryHandler {
	return queries.NewGetOverdueDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateDelivery:        c.CreateCreateDeliveryCommandHandler(),
		AssignDriver:          c.CreateAssignDriverCommandHandler(),
		ChangeDeliveryStatus:  c.CreateChangeDeliveryStatusCommandHandler(),
		RegisterHidingSpot:    c.CreateRegisterHidingSpotCommandHandler(),
		CreateDriver:          c.CreateCreateDriverCommandHandler(),
		UpdateDriverStock:     c.CreateUpdateDriverStockCommandHandler(),
		SetDriverAvailability: c.CreateSetDriverAvailabilityCommandHandler(),
		CreateProduct:         c.CreateCreateProductCommandHandler(),
		DeactivateProduct:     c.CreateDeactivateProductCommandHandler(),
		CreateClient:          c.CreateCreateClientCommandHandler(),

		GetDelivery:        c.CreateGetDeliveryQueryHandler(),
		ListDeliveries:     c.CreateListDeliveriesQueryHandler(),
		GetDeliveryReport:  c.CreateGetDeliveryReportQueryHandler(),
		GetDriverInventory: c.CreateGetDriverInventoryQueryHandler(),
		ListDrivers:        c.CreateListDriversQueryHandler(),
		ListProducts:       c.CreateListProductsQueryHandler(),
		ListClients:        c.CreateListClientsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateRouterConfig(gatherer prometheus.Gatherer) httpin.RouterConfig {
	return httpin.RouterConfig{
		Server:       httpin.NewServer(c.CreateHTTPHandlers()),
		Logger:       c.logger,
		Metrics:      c.metrics,
		Gatherer:     gatherer,
		UploadDir:    c.cfg.UploadDir,
		UploadPrefix: c.cfg.UploadPublicPrefix,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.CreateGetOverdueDeliveriesQueryHandler(),
		jobs.DispatchSettings{
			BatchSize:   c.cfg.NotificationBatchSize,
			MaxAttempts: c.cfg.NotificationMaxAttempts,
		},
		c.metrics,
		c.logger,
	)
}

// Close releases the outbound connections. The database handle belongs to
// the caller.
func (c *CompositionRoot) Close() error {
	var errs []error
	if err := c.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close kafka publisher: %w", err))
	}
	return errors.Join(errs...)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
