package encoder

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/soko-cloud/semsearch/internal/domain"
	"github.com/soko-cloud/semsearch/internal/metrics"
)

// Pool gates forward passes behind a weighted semaphore so the CPU-bound
// encoder cannot saturate the process under concurrent requests. Acquisition
// honors context cancellation; a canceled wait degrades to Unavailable like
// any other encoder failure.
type Pool struct {
	model  *Model
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// NewPool wraps a model with a concurrency gate of the given size.
func NewPool(model *Model, size int, logger *zap.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		model:  model,
		sem:    semaphore.NewWeighted(int64(size)),
		logger: logger,
	}
}

// Dim returns the output embedding dimension D.
func (p *Pool) Dim() int { return p.model.Dim() }

// HealthCheck reports whether a usable model is loaded.
func (p *Pool) HealthCheck(_ context.Context) error {
	if p.model == nil || p.model.Dim() == 0 {
		return errors.New("encoder model not loaded")
	}
	return nil
}

// EncodeItem runs the item tower inside the gate.
func (p *Pool) EncodeItem(ctx context.Context, attrs domain.ItemAttributes) domain.Encoding {
	return p.run(ctx, "item", func() domain.Encoding {
		return p.model.EncodeItem(attrs)
	})
}

// EncodeQuery runs the query tower inside the gate.
func (p *Pool) EncodeQuery(ctx context.Context, text string) domain.Encoding {
	return p.run(ctx, "query", func() domain.Encoding {
		return p.model.EncodeQuery(text)
	})
}

func (p *Pool) run(ctx context.Context, kind string, forward func() domain.Encoding) domain.Encoding {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		metrics.EncodeRequestsTotal.WithLabelValues(kind, "unavailable").Inc()
		return domain.Unavailable("encoder wait canceled: " + err.Error())
	}
	defer p.sem.Release(1)

	start := time.Now()
	enc := forward()
	metrics.EncodeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if !enc.Available() {
		metrics.EncodeRequestsTotal.WithLabelValues(kind, "unavailable").Inc()
		p.logger.Warn("encoding unavailable",
			zap.String("kind", kind),
			zap.String("reason", enc.Reason()),
		)
		return enc
	}

	metrics.EncodeRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return enc
}
