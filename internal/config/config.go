// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	Store   string `env:"CATALOG_STORE" envDefault:"file"` // file or postgres
	DataDir string `env:"CATALOG_DATA_DIR" envDefault:"."` // base directory of the file store

	ProductsFile        string `env:"CATALOG_PRODUCTS_FILE" envDefault:"products.txt"`
	CartFile            string `env:"CATALOG_CART_FILE" envDefault:"cart_data.txt"`
	ReceiptsFile        string `env:"CATALOG_RECEIPTS_FILE" envDefault:"receipts.jsonl"`
	RecommendationsFile string `env:"CATALOG_RECOMMENDATIONS_FILE"` // optional "a|b" pairs
	GraphSeedFile       string `env:"CATALOG_GRAPH_SEED"`           // optional YAML seed, replaces the built-in one

	MaxRecommendations int `env:"CATALOG_MAX_RECOMMENDATIONS" envDefault:"5"`
	LowStockThreshold  int `env:"CATALOG_LOW_STOCK_THRESHOLD" envDefault:"10"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Load reads the optional .env files and then the environment. A missing
// .env file is not an error; it is reported through envLoaded.
func Load(files ...string) (cfg *Config, envLoaded bool, err error) {
	envLoaded = godotenv.Load(files...) == nil

	cfg = &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, envLoaded, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StorePostgres:
	default:
		return fmt.Errorf("CATALOG_STORE must be %q or %q, got %q", StoreFile, StorePostgres, c.Store)
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("CATALOG_MAX_RECOMMENDATIONS must not be negative")
	}
	return nil
}

// DSN returns DATABASE_URL, or a DSN assembled from the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// Path resolves a data file name against DataDir.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
