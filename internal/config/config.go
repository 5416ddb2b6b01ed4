package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"microfin-backoffice/internal/pricing"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// RateTiers overrides the canonical rate table when RATE_TIERS is set.
	// Format: {"<500000":20,"500000-2000000":15,"2000000-5000000":12,">=5000000":10}
	RateTiers []pricing.Tier
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "microfin"),
		MySQLUser: getenv("MYSQL_USER", "microfin"),
		MySQLPass: getenv("MYSQL_PASS", "microfin"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("RATE_TIERS"); v != "" {
		var table map[string]float64
		if err := json.Unmarshal([]byte(v), &table); err != nil {
			return nil, fmt.Errorf("invalid RATE_TIERS: %w", err)
		}
		tiers, err := pricing.ParseTierTable(table)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_TIERS: %w", err)
		}
		c.RateTiers = tiers
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	return nil
}

// RatePolicy builds the pricing policy from the configured tiers, falling
// back to the canonical table when no override is present.
func (c *Config) RatePolicy() (*pricing.RatePolicy, error) {
	if len(c.RateTiers) == 0 {
		return pricing.DefaultRatePolicy(), nil
	}
	return pricing.NewRatePolicy(c.RateTiers)
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
