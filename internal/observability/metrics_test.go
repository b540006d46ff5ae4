package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusObserver_RecordRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer, err := NewPrometheusObserver("test", reg)
	require.NoError(t, err)

	observer.RecordRegistration(10*time.Millisecond, ResultOK, 3)
	observer.RecordRegistration(time.Millisecond, "duplicate_name", 2)
	observer.RecordTrain()

	assert.Equal(t, 1.0, testutil.ToFloat64(observer.registrations.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.registrations.WithLabelValues("duplicate_name")))
	assert.Equal(t, 3.0, testutil.ToFloat64(observer.imagesStored))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.trainRequests))
}

func TestPrometheusObserver_ReRegisterIsTolerated(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusObserver("test", reg)
	require.NoError(t, err)

	_, err = NewPrometheusObserver("test", reg)
	assert.NoError(t, err)
}

func TestNilAndNopObservers(t *testing.T) {
	var observer *PrometheusObserver
	assert.NotPanics(t, func() {
		observer.RecordRegistration(time.Second, ResultOK, 1)
		observer.RecordTrain()
		NopObserver().RecordRegistration(time.Second, ResultOK, 1)
		NopObserver().RecordTrain()
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "hash", "0123456789abcdef")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"hash":"0123456789abcdef"`)
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.NotNil(t, OrDiscard(nil))
}
