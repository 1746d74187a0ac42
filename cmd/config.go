package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret              string
	MercadoPagoAccessToken string
	RabbitMQURL            string
	NotificationExchange   string
	StorePolicyFile        string
	RelayBatchSize         int
	LogLevel               string
}

// ConfigFromEnv reads the configuration from the process environment. Empty optional
// values select the development adapters: the memory store without DB_HOST, the manual
// gateway without MERCADOPAGO_ACCESS_TOKEN and the log dispatcher without RABBITMQ_URL.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:               valueOr(getenv("HTTP_PORT"), "8080"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 valueOr(getenv("DB_PORT"), "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              valueOr(getenv("DB_SSLMODE"), "disable"),
		JWTSecret:              getenv("JWT_SECRET"),
		MercadoPagoAccessToken: getenv("MERCADOPAGO_ACCESS_TOKEN"),
		RabbitMQURL:            getenv("RABBITMQ_URL"),
		NotificationExchange:   getenv("NOTIFICATION_EXCHANGE"),
		StorePolicyFile:        getenv("STORE_POLICY_FILE"),
		RelayBatchSize:         commands.DefaultRelayBatchSize,
		LogLevel:               valueOr(getenv("LOG_LEVEL"), "info"),
	}

	var errList []error
	if cfg.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if raw := getenv("OUTBOX_RELAY_BATCH_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			errList = append(errList, fmt.Errorf("OUTBOX_RELAY_BATCH_SIZE must be a positive integer, got %q", raw))
		}
		cfg.RelayBatchSize = size
	}

	return cfg, errors.Join(errList...)
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// policyFile is the YAML layout of the store policy file.
//
//	vat_rate: 21
//	delivery_fee: "4.50"
//	free_delivery_threshold: "100.00"
//	cashback:
//	  enabled: true
//	  percent: 5
//	loyalty:
//	  points_per_unit: 1
//	  point_value: "0.10"
type policyFile struct {
	VATRate               *decimalValue `yaml:"vat_rate"`
	DeliveryFee           *decimalValue `yaml:"delivery_fee"`
	FreeDeliveryThreshold *decimalValue `yaml:"free_delivery_threshold"`
	Cashback              struct {
		Enabled *bool         `yaml:"enabled"`
		Percent *decimalValue `yaml:"percent"`
	} `yaml:"cashback"`
	Loyalty struct {
		PointsPerUnit *decimalValue `yaml:"points_per_unit"`
		PointValue    *decimalValue `yaml:"point_value"`
	} `yaml:"loyalty"`
}

// decimalValue accepts both quoted and bare YAML numbers.
type decimalValue struct {
	decimal.Decimal
}

func (d *decimalValue) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	d.Decimal = parsed
	return nil
}

// DefaultStorePolicy is used for every setting the policy file leaves out.
func DefaultStorePolicy() commands.StorePolicy {
	return commands.StorePolicy{
		VATRate:               decimal.Zero,
		DeliveryFee:           kernel.MustMoney("5.00"),
		FreeDeliveryThreshold: kernel.ZeroMoney(),
		Rewards: order.RewardPolicy{
			CashbackEnabled: true,
			CashbackPercent: decimal.NewFromInt(5),
			PointsPerUnit:   decimal.NewFromInt(1),
		},
		PointValue: decimal.RequireFromString("0.01"),
	}
}

// LoadStorePolicy reads the YAML policy file at path. An empty path yields the defaults.
func LoadStorePolicy(path string) (commands.StorePolicy, error) {
	policy := DefaultStorePolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return commands.StorePolicy{}, fmt.Errorf("read store policy: %w", err)
	}
	return ParseStorePolicy(raw, policy)
}

// ParseStorePolicy overlays the YAML document on base.
func ParseStorePolicy(raw []byte, base commands.StorePolicy) (commands.StorePolicy, error) {
	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return commands.StorePolicy{}, fmt.Errorf("parse store policy: %w", err)
	}

	policy := base
	if file.VATRate != nil {
		policy.VATRate = file.VATRate.Decimal
	}
	if file.DeliveryFee != nil {
		policy.DeliveryFee = kernel.NewMoney(file.DeliveryFee.Decimal)
	}
	if file.FreeDeliveryThreshold != nil {
		policy.FreeDeliveryThreshold = kernel.NewMoney(file.FreeDeliveryThreshold.Decimal)
	}
	if file.Cashback.Enabled != nil {
		policy.Rewards.CashbackEnabled = *file.Cashback.Enabled
	}
	if file.Cashback.Percent != nil {
		policy.Rewards.CashbackPercent = file.Cashback.Percent.Decimal
	}
	if file.Loyalty.PointsPerUnit != nil {
		policy.Rewards.PointsPerUnit = file.Loyalty.PointsPerUnit.Decimal
	}
	if file.Loyalty.PointValue != nil {
		policy.PointValue = file.Loyalty.PointValue.Decimal
	}

	var errList []error
	if policy.VATRate.IsNegative() {
		errList = append(errList, fmt.Errorf("vat_rate %s is negative", policy.VATRate))
	}
	if policy.DeliveryFee.IsNegative() {
		errList = append(errList, fmt.Errorf("delivery_fee %s is negative", policy.DeliveryFee))
	}
	if policy.FreeDeliveryThreshold.IsNegative() {
		errList = append(errList, fmt.Errorf("free_delivery_threshold %s is negative", policy.FreeDeliveryThreshold))
	}
	if policy.Rewards.CashbackPercent.IsNegative() || policy.Rewards.CashbackPercent.GreaterThan(decimal.NewFromInt(100)) {
		errList = append(errList, fmt.Errorf("cashback percent %s is outside 0..100", policy.Rewards.CashbackPercent))
	}
	if policy.Rewards.PointsPerUnit.IsNegative() || policy.PointValue.IsNegative() {
		errList = append(errList, errors.New("loyalty settings must not be negative"))
	}
	if err := errors.Join(errList...); err != nil {
		return commands.StorePolicy{}, err
	}

	return policy, nil
}
