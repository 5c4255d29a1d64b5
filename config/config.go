package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	MatchFeed MatchFeedConfig `mapstructure:"matchfeed"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Betting   BettingConfig   `mapstructure:"betting"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

type MatchFeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Expiry    time.Duration `mapstructure:"expiry"`
	Issuer    string        `mapstructure:"issuer"`
}

// BettingConfig holds global wagering limits. Amounts are in minor units.
// Per-account limits on the Account record override the daily defaults.
type BettingConfig struct {
	MinStake        int64  `mapstructure:"min_stake"`
	MaxStake        int64  `mapstructure:"max_stake"`
	DailyBetLimit   int64  `mapstructure:"daily_bet_limit"`
	MaxPendingBets  int    `mapstructure:"max_pending_bets"`
	MinWithdraw     int64  `mapstructure:"min_withdraw"`
	MaxWithdraw     int64  `mapstructure:"max_withdraw"`
	DailyWithdrawal int64  `mapstructure:"daily_withdrawal"`
	Timezone        string `mapstructure:"timezone"` // location for "local midnight" daily windows
	ConflictRetries int    `mapstructure:"conflict_retries"`
}

// Location resolves the configured timezone, falling back to UTC.
func (b BettingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: EWP_ (Esports Wagering
// Platform). Nested keys use underscore: EWP_DATABASE_HOST, EWP_BETTING_MAX_STAKE.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wagering")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "bet_lifecycle")
	v.SetDefault("matchfeed.base_url", "http://localhost:8090")
	v.SetDefault("matchfeed.timeout", "3s")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiry", "24h")
	v.SetDefault("auth.issuer", "esports-wagering-platform")
	v.SetDefault("betting.min_stake", 10_00)
	v.SetDefault("betting.max_stake", 100_000_00)
	v.SetDefault("betting.daily_bet_limit", 1_000_000_00)
	v.SetDefault("betting.max_pending_bets", 10)
	v.SetDefault("betting.min_withdraw", 100_00)
	v.SetDefault("betting.max_withdraw", 1_000_000_00)
	v.SetDefault("betting.daily_withdrawal", 1_000_000_00)
	v.SetDefault("betting.timezone", "UTC")
	v.SetDefault("betting.conflict_retries", 3)
	v.SetDefault("metrics.port", "9100")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: EWP_DATABASE_HOST -> database.host
	v.SetEnvPrefix("EWP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
