package poller

import (
	"context"
	"sync"
	"time"

	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	// Interval is the pause between polling cycles.
	Interval time.Duration
	// Workers caps how many deployments are refreshed concurrently
	// within one cycle.
	Workers int
}

const (
	defaultInterval = 15 * time.Second
	defaultWorkers  = 4
)

func (c Config) interval() time.Duration {
	if c.Interval <= 0 {
		return defaultInterval
	}
	return c.Interval
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return defaultWorkers
	}
	return c.Workers
}

// Poller periodically refreshes every in-flight deployment so records
// converge to the provider's view without any caller involvement.
type Poller struct {
	deployments *deployments.Service
	config      Config
	metrics     *metrics
	logger      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func New(deploymentsSvc *deployments.Service, config Config, logger *zap.Logger) *Poller {
	return &Poller{
		deployments: deploymentsSvc,
		config:      config,
		metrics:     newMetrics(),
		logger:      logger,
	}
}

// Start launches the polling loop. It returns immediately; the loop runs
// until Stop is called.
func (p *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)

	p.logger.Info("poller started",
		zap.Duration("interval", p.config.interval()),
		zap.Int("workers", p.config.workers()))
}

// Stop cancels the loop and waits for the current cycle to drain.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}

	p.cancel()
	<-p.done

	p.logger.Info("poller stopped")
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.config.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	// A cycle must never outlive the interval budget by much, otherwise
	// cycles pile up behind a slow provider.
	ctx, cancel := context.WithTimeout(ctx, p.config.interval())
	defer cancel()

	ids, err := p.deployments.ListActiveIDs(ctx)
	if err != nil {
		p.logger.Error("failed to list active deployments", zap.Error(err))
		return
	}

	p.metrics.active.Set(float64(len(ids)))

	if len(ids) > 0 {
		p.logger.Debug("refreshing active deployments", zap.Int("count", len(ids)))
		p.refreshAll(ctx, ids)
	}

	p.metrics.cycles.Inc()
}

func (p *Poller) refreshAll(ctx context.Context, ids []uuid.UUID) {
	queue := make(chan uuid.UUID)

	var wg sync.WaitGroup
	for range p.config.workers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range queue {
				p.refresh(ctx, id)
			}
		}()
	}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- id:
		}
	}

	close(queue)
	wg.Wait()
}

func (p *Poller) refresh(ctx context.Context, id uuid.UUID) {
	p.metrics.refreshes.Inc()

	if _, err := p.deployments.Refresh(ctx, id); err != nil {
		p.metrics.errors.Inc()
		p.logger.Warn("failed to refresh deployment",
			zap.String("deployment_id", id.String()), zap.Error(err))
	}
}
