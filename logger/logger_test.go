package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "torsift/entity"
	"torsift/logger"
)

var _ nt.Logger = &logger.Logger{}

func TestJsonFields(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := logger.Config{Level: "info", Format: "json"}.New(buf)

	ctx := logger.WithFields(context.Background(), "file", "torrents.json")
	lgr.Info(ctx, "set view", "count", 3, "dangling")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "set view", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "torrents.json", entry["file"])
	assert.Equal(t, float64(3), entry["count"])
	assert.Contains(t, entry, "dangling")
	assert.Nil(t, entry["dangling"])
}

func TestError(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := logger.Config{Format: "json"}.New(buf)

	lgr.Error(context.Background(), "failed to load", errors.New("oops"))

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "oops", entry["error"])
}

func TestLevel(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := logger.Config{Level: "error"}.New(buf)

	lgr.Info(context.Background(), "quiet")
	assert.Empty(t, buf.String())

	lgr.Error(context.Background(), "loud", errors.New("oops"))
	assert.Contains(t, buf.String(), "msg=loud")
	assert.Contains(t, buf.String(), "error=oops")
}

func TestNestedFields(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := logger.Config{Format: "json"}.New(buf)

	ctx := logger.WithFields(context.Background(), "a", 1)
	ctx = logger.WithFields(ctx, "b", 2)
	lgr.Info(ctx, "nested")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, float64(1), entry["a"])
	assert.Equal(t, float64(2), entry["b"])
}
