// Package config loads the process configuration from the environment.
//
// Settings that differ per deployment (ports, credentials, secrets) are required; shop-wide
// policy such as fees and time zones carries a default.
package config

import (
	"net/url"
	"time"
	_ "time/tzdata"

	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const minSecretLength = 8

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Order   OrderConfig
	Points  PointsConfig
	Payment PaymentConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Shanghai"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"Asia/Shanghai"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret               string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"2h"`
	RefreshTokenDuration time.Duration `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type OrderConfig struct {
	ShippingFee           decimal.Decimal `envconfig:"ORDER_SHIPPING_FEE" default:"0"`
	FreeShippingThreshold decimal.Decimal `envconfig:"ORDER_FREE_SHIPPING_THRESHOLD" default:"0"`
	IdempotencyTTL        time.Duration   `envconfig:"ORDER_IDEMPOTENCY_TTL" default:"24h"`
	// Zone of the date prefix of order numbers and of coupon validity checks.
	TimeZone string `envconfig:"ORDER_TIMEZONE" default:"Asia/Shanghai"`
}

type PointsConfig struct {
	// Points credited per currency unit of an order's grand total, floored.
	PerUnit decimal.Decimal `envconfig:"POINTS_PER_UNIT" default:"1"`
}

type PaymentConfig struct {
	CallbackSecret        string        `envconfig:"PAYMENT_CALLBACK_SECRET" required:"true"`
	NotifyURL             string        `envconfig:"PAYMENT_NOTIFY_URL" default:"http://localhost:8080/api/payments/callback"`
	GatewayTimeout        time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"5s"`
	BreakerMaxRequests    uint32        `envconfig:"PAYMENT_BREAKER_MAX_REQUESTS" default:"1"`
	BreakerInterval       time.Duration `envconfig:"PAYMENT_BREAKER_INTERVAL" default:"60s"`
	BreakerTimeout        time.Duration `envconfig:"PAYMENT_BREAKER_TIMEOUT" default:"30s"`
	BreakerFailureTrigger uint32        `envconfig:"PAYMENT_BREAKER_FAILURE_TRIGGER" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("timezone", c.TimeZone)
	u.RawQuery = q.Encode()
	return u.String()
}

// Validate rejects combinations envconfig cannot express with struct tags.
func (c Config) Validate() error {
	switch {
	case len(c.JWT.Secret) < minSecretLength:
		return errs.Newf("JWT_SECRET must be at least %d characters", minSecretLength)
	case c.JWT.AccessTokenDuration <= 0 || c.JWT.RefreshTokenDuration <= c.JWT.AccessTokenDuration:
		return errs.New("JWT refresh token duration must exceed the access token duration")
	case c.Payment.CallbackSecret == "":
		return errs.New("PAYMENT_CALLBACK_SECRET must not be empty")
	case c.Payment.BreakerFailureTrigger == 0:
		return errs.New("PAYMENT_BREAKER_FAILURE_TRIGGER must be positive")
	case c.Order.ShippingFee.IsNegative() || c.Order.FreeShippingThreshold.IsNegative():
		return errs.New("order shipping settings must not be negative")
	case c.Points.PerUnit.IsNegative():
		return errs.New("POINTS_PER_UNIT must not be negative")
	}
	if _, err := time.LoadLocation(c.Order.TimeZone); err != nil {
		return errs.Wrapf(err, "ORDER_TIMEZONE %q", c.Order.TimeZone)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errs.Wrap(err, "process env config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errs.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// NewTestConfig matches the settings the e2e database container and the handler tests expect.
func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              "8889",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Shanghai",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error",
			TimeZone:   "Asia/Shanghai",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:               "test-secret",
			AccessTokenDuration:  time.Hour,
			RefreshTokenDuration: 24 * time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Order: OrderConfig{
			ShippingFee:           decimal.NewFromInt(5),
			FreeShippingThreshold: decimal.NewFromInt(99),
			IdempotencyTTL:        24 * time.Hour,
			TimeZone:              "Asia/Shanghai",
		},
		Points: PointsConfig{
			PerUnit: decimal.NewFromInt(1),
		},
		Payment: PaymentConfig{
			CallbackSecret:        "test-callback-secret",
			GatewayTimeout:        time.Second,
			BreakerMaxRequests:    1,
			BreakerInterval:       time.Minute,
			BreakerTimeout:        time.Second,
			BreakerFailureTrigger: 3,
		},
	}
}
