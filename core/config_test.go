package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("CONFIG_DIR", t.TempDir())

		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "DEV", conf.Env)
		assert.True(t, conf.Debug)
		assert.False(t, conf.TestMode)
		assert.Equal(t, "Masomo", conf.AppName)
		assert.Equal(t, ":8000", conf.Server.Address)
		assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
		assert.Empty(t, conf.Catalog.Path)
	})

	t.Run("dotenv and environment", func(t *testing.T) {
		dir := t.TempDir()
		dotEnv := "QA_APPNAME=Masomo QA\nQA_SERVER_ADDRESS=:9000\nQA_SERVER_WRITETIMEOUT=30s\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.qa"), []byte(dotEnv), 0o600))
		t.Setenv("ENV", "qa")
		t.Setenv("CONFIG_DIR", dir)
		t.Setenv("QA_CATALOG_PATH", "/etc/masomo/schemas.yaml")

		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "QA", conf.Env)
		assert.False(t, conf.Debug)
		assert.Equal(t, "Masomo QA", conf.AppName)
		assert.Equal(t, ":9000", conf.Server.Address)
		assert.Equal(t, 30*time.Second, conf.Server.WriteTimeout)
		assert.Equal(t, "/etc/masomo/schemas.yaml", conf.Catalog.Path)
	})
}
