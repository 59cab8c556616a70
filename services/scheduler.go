// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"riot-stats-api/logging"
	"riot-stats-api/metrics"
)

// StoreMonitor periodically pings MongoDB and refreshes the collection size gauges.
type StoreMonitor struct {
	Probe   StoreProbe
	Timeout time.Duration
	log     zerolog.Logger
}

// NewStoreMonitor binds a component=monitor child of the current global logger.
func NewStoreMonitor(probe StoreProbe, timeout time.Duration) *StoreMonitor {
	return &StoreMonitor{
		Probe:   probe,
		Timeout: timeout,
		log:     logging.With().Str("component", "monitor").Logger(),
	}
}

// Start schedules the check every interval, beginning immediately. The caller
// shuts the returned scheduler down.
func (m *StoreMonitor) Start(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
			defer cancel()
			m.Check(ctx)
		}),
		gocron.WithName("store-monitor"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule store monitor: %w", err)
	}

	sched.Start()
	m.log.Info().Dur("interval", interval).Msg("store monitor started")
	return sched, nil
}

// Check runs one probe round. It reports whether the store answered.
func (m *StoreMonitor) Check(ctx context.Context) bool {
	if err := m.Probe.Ping(ctx); err != nil {
		metrics.StoreUp.Set(0)
		m.log.Error().Err(err).Msg("MongoDB ping failed")
		return false
	}
	metrics.StoreUp.Set(1)

	counts, err := m.Probe.EstimatedCounts(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("collection counts unavailable")
		return true
	}
	ev := m.log.Debug()
	for name, n := range counts {
		metrics.CollectionDocuments.WithLabelValues(name).Set(float64(n))
		ev = ev.Int64(name, n)
	}
	ev.Msg("collection sizes")
	return true
}
