package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riot-stats-api/logging"
	"riot-stats-api/metrics"
	"riot-stats-api/services"
)

type fakeProbe struct {
	pingErr  error
	counts   map[string]int64
	countErr error
	pings    chan struct{}
}

func (p *fakeProbe) Ping(context.Context) error {
	if p.pings != nil {
		select {
		case p.pings <- struct{}{}:
		default:
		}
	}
	return p.pingErr
}

func (p *fakeProbe) EstimatedCounts(context.Context) (map[string]int64, error) {
	return p.counts, p.countErr
}

func TestStoreMonitorCheck(t *testing.T) {
	probe := &fakeProbe{counts: map[string]int64{"players": 42, "match_ids": 7}}
	m := services.NewStoreMonitor(probe, time.Second)

	assert.True(t, m.Check(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreUp))
	assert.Equal(t, 42.0, testutil.ToFloat64(metrics.CollectionDocuments.WithLabelValues("players")))

	probe.countErr = errors.New("slow")
	assert.True(t, m.Check(context.Background()))

	probe.pingErr = errors.New("down")
	assert.False(t, m.Check(context.Background()))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StoreUp))
}

func TestStoreMonitorRunsImmediately(t *testing.T) {
	probe := &fakeProbe{counts: map[string]int64{}, pings: make(chan struct{}, 1)}
	m := services.NewStoreMonitor(probe, time.Second)

	sched, err := m.Start(time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Shutdown() })

	select {
	case <-probe.pings:
	case <-time.After(5 * time.Second):
		t.Fatal("store monitor did not run on start")
	}
}

func TestStoreMonitorLogsAsComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	m := services.NewStoreMonitor(&fakeProbe{pingErr: errors.New("down")}, time.Second)
	assert.False(t, m.Check(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"component":"monitor"`)
	assert.Contains(t, out, `"message":"MongoDB ping failed"`)
}
