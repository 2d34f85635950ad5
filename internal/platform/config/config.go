package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "HRM_"
	envConfig  = "HRM_CONFIG"
	minBodyLen = 1024
)

type Config struct {
	Addr              string        `koanf:"addr"`
	DatabaseURL       string        `koanf:"database_url"`
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	FrontendDir       string        `koanf:"frontend_dir"`
	Environment       string        `koanf:"environment"`
	AllowedOrigins    []string      `koanf:"allowed_origins"`
	SeedTenantName    string        `koanf:"seed_tenant_name"`
	SeedAdminEmail    string        `koanf:"seed_admin_email"`
	SeedAdminPassword string        `koanf:"seed_admin_password"`
	RunMigrations     bool          `koanf:"run_migrations"`
	MigrationsDir     string        `koanf:"migrations_dir"`
	RunSeed           bool          `koanf:"run_seed"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
	MetricsEnabled    bool          `koanf:"metrics_enabled"`
	BonusThreshold    float64       `koanf:"bonus_threshold"`

	MaintenanceInterval time.Duration `koanf:"maintenance_interval"`
	IdempotencyTTL      time.Duration `koanf:"idempotency_ttl"`
	AuditRetentionDays  int           `koanf:"audit_retention_days"`
}

func Defaults() Config {
	return Config{
		Addr:           ":8080",
		TokenTTL:       8 * time.Hour,
		FrontendDir:    "frontend/dist",
		Environment:    "development",
		AllowedOrigins: []string{"http://localhost:5173"},
		SeedTenantName: "Default Tenant",
		RunMigrations:  true,
		MigrationsDir:  "migrations",
		RunSeed:        true,
		MaxBodyBytes:   1048576,
		MetricsEnabled: true,
		BonusThreshold: 4.2,

		MaintenanceInterval: time.Hour,
		IdempotencyTTL:      24 * time.Hour,
	}
}

// Load layers defaults, the YAML file named by HRM_CONFIG and HRM_* env vars,
// later sources winning.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// HRM_DATABASE_URL -> database_url
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)
	return cfg, nil
}

// splitOrigins accepts a comma-separated env value as well as a YAML list.
func splitOrigins(values []string) []string {
	var out []string
	for _, value := range values {
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("HRM_DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("HRM_JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("HRM_SEED_ADMIN_PASSWORD must be changed or HRM_RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < minBodyLen {
		return fmt.Errorf("HRM_MAX_BODY_BYTES must be at least %d", minBodyLen)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("HRM_TOKEN_TTL must be positive")
	}
	if c.BonusThreshold < 1 || c.BonusThreshold > 5 {
		return fmt.Errorf("HRM_BONUS_THRESHOLD must be between 1 and 5")
	}
	if c.AuditRetentionDays < 0 {
		return fmt.Errorf("HRM_AUDIT_RETENTION_DAYS must not be negative")
	}
	return nil
}
