package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, loaded, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "products.txt", cfg.ProductsFile)
	assert.Equal(t, "cart_data.txt", cfg.CartFile)
	assert.Equal(t, 5, cfg.MaxRecommendations)
	assert.Equal(t, 10, cfg.LowStockThreshold)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_STORE", "postgres")
	t.Setenv("CATALOG_DATA_DIR", "/var/lib/catalog")
	t.Setenv("CATALOG_MAX_RECOMMENDATIONS", "3")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/catalog")

	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 3, cfg.MaxRecommendations)
	assert.Equal(t, "postgres://u:p@db:5432/catalog", cfg.DSN())
	assert.Equal(t, "/var/lib/catalog/products.txt", cfg.Path(cfg.ProductsFile))
	assert.Equal(t, "/tmp/x.txt", cfg.Path("/tmp/x.txt"))
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_LOW_STOCK_THRESHOLD=3\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CATALOG_LOW_STOCK_THRESHOLD") })

	cfg, loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 3, cfg.LowStockThreshold)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("CATALOG_STORE", "redis")

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "CATALOG_STORE")
}

func TestDSNFromParts(t *testing.T) {
	cfg := &Config{DBHost: "h", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "1"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", cfg.DSN())
}
