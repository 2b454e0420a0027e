package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/user"
)

func newTestLogger(buf *bytes.Buffer) *RollbarLogger {
	logger := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)
	return logger
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := newTestLogger(new(bytes.Buffer))
	usr := user.User{ID: "u1", Name: "Jo", Email: "jo@masomo.cd"}
	err := errors.New("boom")

	args := logger.prepare("failed", []interface{}{err, usr, user.User{ID: "u2"}, map[string]interface{}{"k": 1}})
	assert.Equal(t, []interface{}{"failed", err, map[string]interface{}{"k": 1}}, args)
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newTestLogger(buf)

	logger.Error("saving school", errors.New("disk full"), user.User{ID: "u1"})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[ERROR] saving school\ndisk full\n"), out)
	assert.NotContains(t, out, "u1")
}
