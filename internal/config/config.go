package config

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	SMTP     SMTPConfig     `env:",prefix=SMTP_"`
	App      AppConfig      `env:",prefix=APP_"`
	Jobs     JobsConfig     `env:",prefix=JOBS_"`
	Env      string         `env:"ENV,default=development"`
	LogLevel string         `env:"LOG_LEVEL,default="`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host         string `env:"HOST,default=localhost"`
	Port         string `env:"PORT,default=5432"`
	User         string `env:"USER,default=task_manager"`
	Password     string `env:"PASSWORD,default=task_manager_password"`
	DBName       string `env:"DB,default=task_manager_db"`
	SSLMode      string `env:"SSLMODE,default=disable"`
	AutoMigrate  bool   `env:"AUTO_MIGRATE,default=true"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
	PoolSize int    `env:"POOL_SIZE,default=0"`
}

type JWTConfig struct {
	Secret             string   `env:"SECRET,required"`
	AccessTokenExpiry  Duration `env:"ACCESS_TOKEN_EXPIRY,default=1h"`
	RefreshTokenExpiry Duration `env:"REFRESH_TOKEN_EXPIRY,default=7d"`
}

type SecurityConfig struct {
	BCryptCost          int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests   int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow     Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
	LockoutThreshold    int      `env:"LOCKOUT_THRESHOLD,default=5"`
	LockoutWindow       Duration `env:"LOCKOUT_WINDOW,default=1h"`
	RotateRefreshTokens bool     `env:"ROTATE_REFRESH_TOKENS,default=false"`
	CookieSecure        bool     `env:"COOKIE_SECURE,default=false"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// SMTPConfig configures outbound mail. An empty Host disables delivery.
type SMTPConfig struct {
	Host          string `env:"HOST,default="`
	Port          int    `env:"PORT,default=587"`
	Username      string `env:"USERNAME,default="`
	Password      string `env:"PASSWORD,default="`
	From          string `env:"FROM,default=no-reply@localhost"`
	RatePerMinute int    `env:"RATE_PER_MINUTE,default=30"`
}

type AppConfig struct {
	APIURL    string `env:"API_URL,default=http://localhost:8080"`
	ClientURL string `env:"CLIENT_URL,default=http://localhost:3000"`
}

type JobsConfig struct {
	TokenCleanupSchedule string `env:"TOKEN_CLEANUP_SCHEDULE,default=@hourly"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// URL returns the connection string in URL form, as golang-migrate expects it
func (p PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%s", p.Host, p.Port),
		Path:     p.DBName,
		RawQuery: "sslmode=" + p.SSLMode,
	}
	return u.String()
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Enabled reports whether an SMTP relay is configured
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var config Config

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Security.BCryptCost < bcrypt.MinCost || c.Security.BCryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.Security.LockoutThreshold < 1 {
		return fmt.Errorf("LOCKOUT_THRESHOLD must be positive")
	}

	if c.JWT.AccessTokenExpiry.Duration <= 0 || c.JWT.RefreshTokenExpiry.Duration <= 0 {
		return fmt.Errorf("token expiries must be positive")
	}

	return nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
