package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	Configure(logger, &buf, "debug", "json")

	logger.WithField("restaurant_id", "abc").Debug("detail fetched")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "detail fetched", entry["msg"])
	assert.Equal(t, "abc", entry["restaurant_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigure_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	Configure(logger, &buf, "loud", "text")

	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}
