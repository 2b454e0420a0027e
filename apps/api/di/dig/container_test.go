package dig_container

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/validation"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("TEST_SERVER_DISABLEREQLOGS", "true")

	c := New()
	err := c.Invoke(func(conf *core.Config, cat *catalog.Catalog, server echoapi.Server) {
		assert.True(t, conf.TestMode)
		assert.True(t, conf.Server.DisableReqLogs)
		assert.Len(t, cat.Names(), 7)

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}

func TestNewCatalog(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("- name: note.create\n  fields:\n    - name: body\n      type: string\n"), 0o600))
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("- name: note.create\n  fields:\n    - name: body\n      type: text\n"), 0o600))

	cat, err := newCatalog(&core.Config{Catalog: core.CatalogConfig{Path: valid}})
	require.NoError(t, err)
	assert.Equal(t, []string{"note.create"}, cat.Names())

	_, err = newCatalog(&core.Config{Catalog: core.CatalogConfig{Path: invalid}})
	assert.True(t, validation.IsSchemaDefinitionError(err))

	_, err = newCatalog(&core.Config{Catalog: core.CatalogConfig{Path: filepath.Join(dir, "missing.yaml")}})
	assert.Error(t, err)
}
