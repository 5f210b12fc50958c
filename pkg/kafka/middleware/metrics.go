package kafkamiddleware

import (
	"context"
	"sync/atomic"
	"time"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
)

// Metrics counts messages passing through one producer or consumer.
type Metrics struct {
	Succeeded     atomic.Int64
	Failed        atomic.Int64
	durationNanos atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) observe(start time.Time, err error) {
	m.durationNanos.Add(int64(time.Since(start)))
	if err != nil {
		m.Failed.Add(1)
		return
	}
	m.Succeeded.Add(1)
}

// AvgDuration is the mean handling time over all observed messages.
func (m *Metrics) AvgDuration() time.Duration {
	n := m.Succeeded.Load() + m.Failed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.durationNanos.Load() / n)
}

// LogSummary writes the counters, typically at shutdown.
func (m *Metrics) LogSummary(log *logger.Logger, name string) {
	log.Info("Kafka metrics",
		"name", name,
		"succeeded", m.Succeeded.Load(),
		"failed", m.Failed.Load(),
		"avg_duration", m.AvgDuration().String(),
	)
}

func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.observe(start, err)
		return err
	}
}

func MetricsConsumerMiddleware(m *Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.observe(start, err)
		return err
	}
}
