package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/kafka"
	"tracking/internal/adapters/out/memory"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/directoryrepo"
	"tracking/internal/adapters/out/postgres/shipmentrepo"
	"tracking/internal/adapters/out/rediscache"
	"tracking/internal/adapters/out/s3assets"
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"

	"github.com/labstack/echo/v4"
)

// CompositionRoot owns the adapters of one process and builds the handlers over them.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	shipments   ports.ShipmentRepository
	accounts    ports.AccountDirectory
	enterprises ports.EnterpriseDirectory
	assets      ports.AssetResolver
	publisher   ports.EventPublisher

	closers []io.Closer
}

// NewCompositionRoot connects the configured storage driver and optional
// integrations. Kafka, the object store and Redis are only used when configured.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{config: config, logger: logger}

	var err error
	switch config.StorageDriver {
	case StorageDriverMemory:
		err = c.useMemory()
	case StorageDriverPostgres, "":
		err = c.usePostgres()
	default:
		err = fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewPublisher(brokers, config.KafkaShipmentChangedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher)
	}

	if err = c.useAssetResolver(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

func (c *CompositionRoot) usePostgres() error {
	settings := postgres.ConnectionSettings{
		Host:     c.config.DBHost,
		Port:     c.config.DBPort,
		User:     c.config.DBUser,
		Password: c.config.DBPassword,
		DBName:   c.config.DBName,
		SSLMode:  c.config.DBSslMode,
	}

	db, err := postgres.Open(settings.DSN())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB)

	if err = postgres.Migrate(db); err != nil {
		return err
	}

	c.shipments = shipmentrepo.NewGormShipmentRepository(db)
	c.accounts = directoryrepo.NewGormAccountDirectory(db)
	c.enterprises = directoryrepo.NewGormEnterpriseDirectory(db)
	return nil
}

func (c *CompositionRoot) useMemory() error {
	accounts := memory.NewDirectory()
	for _, raw := range c.config.SeedAccountIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return fmt.Errorf("seed account %q: %w", raw, err)
		}
		accounts.Register(id)
	}

	enterprises := memory.NewEnterpriseDirectory()
	for _, raw := range c.config.SeedEnterpriseIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return fmt.Errorf("seed enterprise %q: %w", raw, err)
		}
		enterprises.Register(ports.EnterpriseProfile{ID: id})
	}

	c.shipments = memory.NewShipmentStore()
	c.accounts = accounts
	c.enterprises = enterprises
	c.logger.Warn("Using in-memory storage; shipments are lost on restart")
	return nil
}

func (c *CompositionRoot) useAssetResolver(ctx context.Context) error {
	if c.config.AssetBucket == "" && c.config.AssetPublicBaseURL == "" {
		return nil
	}

	resolver, err := s3assets.NewResolver(ctx, s3assets.Settings{
		Bucket:        c.config.AssetBucket,
		Endpoint:      c.config.AssetEndpoint,
		Region:        c.config.AssetRegion,
		AccessKey:     c.config.AssetAccessKey,
		SecretKey:     c.config.AssetSecretKey,
		PublicBaseURL: c.config.AssetPublicBaseURL,
		URLTTL:        c.config.AssetURLTTL,
	})
	if err != nil {
		return err
	}
	c.assets = resolver

	if c.config.RedisAddr == "" {
		return nil
	}

	client, err := rediscache.NewClient(ctx, c.config.RedisAddr, c.config.RedisPassword)
	if err != nil {
		c.logger.Warn("Redis unavailable, asset URLs are not cached", "error", err)
		return nil
	}
	c.closers = append(c.closers, client)

	// signed URLs must outlive their cache entry
	ttl := resolver.TTL() / 2
	if ttl == 0 {
		ttl = c.config.AssetURLTTL
	}
	c.assets = rediscache.NewCachingResolver(resolver, client, ttl, c.logger)
	return nil
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		services.NewReferentialValidator(c.accounts, c.enterprises),
		services.NewIdentifierGenerator(nil),
		c.shipments,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.shipments, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAppendProgressCommandHandler() commands.AppendProgressCommandHandler {
	return commands.NewAppendProgressCommandHandler(c.shipments, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.shipments, c.config.StrictStatusTransitions, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkOverdueShipmentsCommandHandler() commands.MarkOverdueShipmentsCommandHandler {
	return commands.NewMarkOverdueShipmentsCommandHandler(c.shipments, c.CreateUpdateStatusCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetShipmentsByOwnerQueryHandler() queries.GetShipmentsByOwnerQueryHandler {
	return queries.NewGetShipmentsByOwnerQueryHandler(c.shipments, c.enterprises, c.assets, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentsByEnterpriseQueryHandler() queries.GetShipmentsByEnterpriseQueryHandler {
	return queries.NewGetShipmentsByEnterpriseQueryHandler(c.shipments, c.enterprises, c.assets, c.logger)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.shipments, c.enterprises, c.assets, c.logger)
}

func (c *CompositionRoot) CreateTrackingService() *tracking.Service {
	return tracking.NewService(tracking.Handlers{
		CreateShipment: c.CreateCreateShipmentCommandHandler(),
		UpdateLocation: c.CreateUpdateLocationCommandHandler(),
		AppendProgress: c.CreateAppendProgressCommandHandler(),
		UpdateStatus:   c.CreateUpdateStatusCommandHandler(),
		ByOwner:        c.CreateGetShipmentsByOwnerQueryHandler(),
		ByEnterprise:   c.CreateGetShipmentsByEnterpriseQueryHandler(),
		TrackShipment:  c.CreateTrackShipmentQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateMarkOverdueShipmentsCommandHandler()
	return jobs.NewJobManager(&handler, c.config.OverdueSweepSchedule, c.logger)
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpin.NewServer(c.CreateTrackingService())
	return httpin.NewRouter(server, httpin.NewTokenVerifier(c.config.JWTSecret))
}

// Close releases every connection opened by the root, newest first.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
