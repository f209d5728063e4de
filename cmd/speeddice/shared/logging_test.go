package shared

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, false, "json")
	logger.Debug("hidden")
	logger.Info("shown", "players", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"players":3`)

	buf.Reset()
	logger = SetupLogger(&buf, true, "logfmt")
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
