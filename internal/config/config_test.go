package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d, want 300", c.IdempTTLSecs)
	}
	if len(c.RateTiers) != 0 {
		t.Fatalf("RateTiers should be empty without RATE_TIERS, got %d", len(c.RateTiers))
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate on defaults: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9090" {
		t.Fatalf("AppPort = %q, want 9090", c.AppPort)
	}
	if c.RedisDB != 3 {
		t.Fatalf("RedisDB = %d, want 3", c.RedisDB)
	}
	if c.IdempTTLSecs != 60 {
		t.Fatalf("IdempTTLSecs = %d, want 60", c.IdempTTLSecs)
	}
}

func TestLoad_RateTiers(t *testing.T) {
	t.Setenv("RATE_TIERS", `{"<1000000":18,"1000000-3000000":14,">=3000000":9}`)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.RateTiers) != 3 {
		t.Fatalf("RateTiers len = %d, want 3", len(c.RateTiers))
	}

	p, err := c.RatePolicy()
	if err != nil {
		t.Fatalf("RatePolicy: %v", err)
	}
	rate, err := p.RateFor(2_000_000)
	if err != nil {
		t.Fatalf("RateFor: %v", err)
	}
	if rate != 14 {
		t.Fatalf("RateFor(2M) = %v, want 14", rate)
	}
}

func TestLoad_RateTiers_Invalid(t *testing.T) {
	t.Setenv("RATE_TIERS", `{"garbage":1}`)
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed RATE_TIERS")
	}

	t.Setenv("RATE_TIERS", `not-json`)
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-JSON RATE_TIERS")
	}
}

func TestRatePolicy_DefaultFallback(t *testing.T) {
	c := &Config{}
	p, err := c.RatePolicy()
	if err != nil {
		t.Fatalf("RatePolicy: %v", err)
	}
	rate, err := p.RateFor(10_000_000)
	if err != nil {
		t.Fatalf("RateFor: %v", err)
	}
	if rate != 10 {
		t.Fatalf("RateFor(10M) = %v, want 10", rate)
	}
}

func TestValidate_Failures(t *testing.T) {
	c := &Config{AppPort: "8080", MySQLHost: "db", MySQLPort: "notaport", MySQLDB: "x", MySQLUser: "u"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}

	c = &Config{AppPort: "8080"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing MySQL config")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{
		MySQLHost: "db", MySQLPort: "3306", MySQLDB: "ledger",
		MySQLUser: "svc", MySQLPass: "secret",
	}
	want := "svc:secret@tcp(db:3306)/ledger?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("MySQLDSN = %q, want %q", got, want)
	}
}
