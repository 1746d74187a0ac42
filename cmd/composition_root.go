package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/adapters/out/notification"
	"storefront/internal/adapters/out/payment"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters and builds every handler from them.
type CompositionRoot struct {
	config     Config
	policy     commands.StorePolicy
	clock      commands.Clock
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	gateway    ports.PaymentGateway
	dispatcher ports.NotificationDispatcher

	closers []func() error
}

// NewCompositionRoot connects the adapters selected by config. Close releases them.
func NewCompositionRoot(ctx context.Context, config Config, policy commands.StorePolicy, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		policy: policy,
		clock:  commands.SystemClock,
		logger: logger,
	}

	if err := c.connectStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.connectGateway(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.connectDispatcher(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

func (c *CompositionRoot) connectStore(ctx context.Context) error {
	if c.config.DBHost == "" {
		c.logger.Warn("DB_HOST is not set, using the in-memory store")
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		return nil
	}

	sqlDB, err := sql.Open("postgres", c.config.DSN())
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	if err := postgres.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	c.logger.Info("connected to postgres", "host", c.config.DBHost, "database", c.config.DBName)
	return nil
}

func (c *CompositionRoot) connectGateway() error {
	if c.config.MercadoPagoAccessToken == "" {
		c.logger.Warn("MERCADOPAGO_ACCESS_TOKEN is not set, payments are recorded without a processor")
		c.gateway = payment.NewManualGateway(c.logger)
		return nil
	}

	gateway, err := payment.NewMercadoPagoGateway(c.config.MercadoPagoAccessToken)
	if err != nil {
		return fmt.Errorf("mercadopago: %w", err)
	}
	c.gateway = gateway
	return nil
}

func (c *CompositionRoot) connectDispatcher() error {
	if c.config.RabbitMQURL == "" {
		c.dispatcher = notification.NewLogDispatcher(c.logger)
		return nil
	}

	exchange := valueOr(c.config.NotificationExchange, notification.DefaultExchange)
	dispatcher, err := notification.NewRabbitMQDispatcher(c.config.RabbitMQURL, exchange)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	c.closers = append(c.closers, dispatcher.Close)
	c.dispatcher = dispatcher
	c.logger.Info("publishing notifications to rabbitmq", "exchange", exchange)
	return nil
}

// Close releases the connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(c.CreateHandlers(), c.logger)
}

func (c *CompositionRoot) CreateHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		RefundOrder:          c.CreateRefundOrderCommandHandler(),
		CapturePayment:       c.CreateCapturePaymentCommandHandler(),
		AssignDriver:         c.CreateAssignDriverCommandHandler(),
		Delivery:             c.CreateDeliveryCommandHandler(),
		UpdateLocation:       c.CreateUpdateDriverLocationCommandHandler(),
		TopUpAccount:         c.CreateTopUpAccountCommandHandler(),
		AdjustBalance:        c.CreateAdjustBalanceCommandHandler(),
		RedeemPoints:         c.CreateRedeemLoyaltyPointsCommandHandler(),
		CreatePromoCode:      c.CreateCreatePromoCodeCommandHandler(),
		Drivers:              c.CreateDriverCommandHandler(),
		GetOrder:             queries.NewGetOrderQueryHandler(c.uowFactory),
		ListCustomerOrders:   queries.NewListCustomerOrdersQueryHandler(c.uowFactory),
		GetAccount:           queries.NewGetAccountQueryHandler(c.uowFactory, c.policy.PointValue, c.clock),
		GetTracking:          queries.NewGetTrackingQueryHandler(c.uowFactory),
		ListDriverDeliveries: queries.NewListDriverDeliveriesQueryHandler(c.uowFactory),
		ValidatePromoCode:    queries.NewValidatePromoCodeQueryHandler(c.uowFactory, c.clock),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRelayOutboxCommandHandler(), c.config.RelayBatchSize, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.policy, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uowFactory, c.gateway, c.policy, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.uowFactory, c.gateway, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCapturePaymentCommandHandler() commands.CapturePaymentCommandHandler {
	return commands.NewCapturePaymentCommandHandler(c.uowFactory, c.gateway, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateDeliveryCommandHandler() commands.DeliveryCommandHandler {
	return commands.NewDeliveryCommandHandler(c.uowFactory, c.policy, c.clock)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateTopUpAccountCommandHandler() commands.TopUpAccountCommandHandler {
	return commands.NewTopUpAccountCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateAdjustBalanceCommandHandler() commands.AdjustBalanceCommandHandler {
	return commands.NewAdjustBalanceCommandHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateRedeemLoyaltyPointsCommandHandler() commands.RedeemLoyaltyPointsCommandHandler {
	return commands.NewRedeemLoyaltyPointsCommandHandler(c.uowFactory, c.policy, c.clock)
}

func (c *CompositionRoot) CreateCreatePromoCodeCommandHandler() commands.CreatePromoCodeCommandHandler {
	return commands.NewCreatePromoCodeCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateDriverCommandHandler() commands.DriverCommandHandler {
	return commands.NewDriverCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.uowFactory, c.dispatcher, c.clock)
}
