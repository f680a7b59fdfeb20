package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/geocoding"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/geocodecache"
	geocoderesolver "dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry  *prometheus.Registry
	metrics   *metrics.Dispatch
	publisher ports.EventPublisher
	closers   []io.Closer

	// Shared so that every trigger (API, cron, CLI) waits on the same run
	// lock and resolver cache.
	generate *commands.GenerateBatchesCommandHandler
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   prometheus.NewRegistry(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := metrics.NewDispatch(c.registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	c.metrics = m

	c.publisher = c.createEventPublisher()

	generate, err := c.createGenerateBatchesCommandHandler()
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.generate = generate

	return c, nil
}

func (c *CompositionRoot) createEventPublisher() ports.EventPublisher {
	if len(c.cfg.KafkaBrokers) == 0 {
		return eventbus.NewLogPublisher(c.logger)
	}
	p := eventbus.NewKafkaPublisher(eventbus.NewKafkaWriter(c.cfg.KafkaBrokers, c.cfg.KafkaTopic), c.logger)
	c.closers = append(c.closers, p)
	return p
}

func (c *CompositionRoot) createGeocoder() (ports.Geocoder, error) {
	switch c.cfg.GeocoderProvider {
	case GeocoderOpenCage:
		return geocoding.NewOpenCageGeocoder(geocoding.OpenCageConfig{
			BaseURL: c.cfg.GeocoderURL,
			APIKey:  c.cfg.GeocoderAPIKey,
			Country: c.cfg.GeocoderCountry,
			Timeout: c.cfg.GeocoderTimeout,
			Retry:   geocoding.DefaultRetryPolicy(),
		})
	default:
		return geocoding.NewOfflineGeocoder(), nil
	}
}

func (c *CompositionRoot) createGenerateBatchesCommandHandler() (*commands.GenerateBatchesCommandHandler, error) {
	geocoder, err := c.createGeocoder()
	if err != nil {
		return nil, fmt.Errorf("geocoder: %w", err)
	}

	resolver, err := geocoderesolver.NewResolver(geocoder,
		geocoderesolver.WithPersistentCache(geocodecache.NewGormGeocodeCache(c.gormDB)),
		geocoderesolver.WithConcurrency(c.cfg.GeocoderConcurrency),
		geocoderesolver.WithMetrics(c.metrics),
		geocoderesolver.WithLogger(c.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("geocode resolver: %w", err)
	}

	planner := services.NewBatchPlanner(
		services.NewKMeansPartitioner(
			services.WithMaxIterations(c.cfg.KMeansMaxIterations),
			services.WithEpsilon(c.cfg.KMeansEpsilon),
		),
		services.NewCapacitySplitter(),
	)

	return commands.NewGenerateBatchesCommandHandler(c.createUoWFactory(), resolver, planner, c.cfg.Limits(),
		commands.WithEventPublisher(c.publisher),
		commands.WithMetrics(c.metrics),
		commands.WithLogger(c.logger),
	)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGenerateBatchesCommandHandler() *commands.GenerateBatchesCommandHandler {
	return c.generate
}

func (c *CompositionRoot) CreateCompleteBatchesCommandHandler() commands.CompleteBatchesCommandHandler {
	return commands.NewCompleteBatchesCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateGetBatchesQueryHandler() queries.GetBatchesQueryHandler {
	return queries.NewGetBatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchQueryHandler() queries.GetBatchQueryHandler {
	return queries.NewGetBatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchStatsQueryHandler() queries.GetBatchStatsQueryHandler {
	return queries.NewGetBatchStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return metrics.Handler(c.registry)
}

// CreateRouter builds the echo instance serving the REST API, the health
// check, metrics and swagger UI.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	assign := c.CreateAssignDriverCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()
	deliver := c.CreateDeliverOrderCommandHandler()
	createDriver := c.CreateCreateDriverCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		GenerateBatches: c.generate,
		AssignDriver:    &assign,
		CreateOrder:     &createOrder,
		DeliverOrder:    &deliver,
		CreateDriver:    &createDriver,
		GetBatches:      c.CreateGetBatchesQueryHandler(),
		GetBatch:        c.CreateGetBatchQueryHandler(),
		GetBatchStats:   c.CreateGetBatchStatsQueryHandler(),
		GetPending:      c.CreateGetPendingOrdersQueryHandler(),
		GetDrivers:      c.CreateGetAllDriversQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.MetricsHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	complete := c.CreateCompleteBatchesCommandHandler()
	return jobs.NewJobManager(c.generate, &complete, jobs.Schedules{
		Generation:        c.cfg.GenerationSchedule,
		GenerationTimeout: c.cfg.GenerationTimeout,
		Completion:        c.cfg.CompletionSchedule,
	}, c.logger)
}

// Close releases the event publisher connections.
func (c *CompositionRoot) Close() error {
	var err error
	for _, closer := range c.closers {
		err = errors.Join(err, closer.Close())
	}
	c.closers = nil
	return err
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
