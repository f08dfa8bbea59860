package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAlreadyRunning = errs.New("reclaimer already running")

type ReclaimerConfig struct {
	// Interval between sweeps for expired holds; bounds the worst-case
	// staleness window between a hold expiring and its seats freeing.
	Interval time.Duration
	// BatchSize caps the holds processed per sweep.
	BatchSize int
}

func DefaultReclaimerConfig() ReclaimerConfig {
	return ReclaimerConfig{
		Interval:  time.Minute,
		BatchSize: 100,
	}
}

// Reclaimer cancels stale temporary bookings and frees their seats. It
// runs independently of request handling and shares no in-process locks
// with it: every reclaimed booking is re-checked transactionally, so a
// hold finalized or cancelled between selection and commit is skipped
// and repeated sweeps are idempotent.
type Reclaimer struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	config ReclaimerConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewReclaimer(uow shared.UnitOfWork, clk clock.Clock, config ReclaimerConfig) *Reclaimer {
	if config.Interval <= 0 {
		config.Interval = DefaultReclaimerConfig().Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultReclaimerConfig().BatchSize
	}

	return &Reclaimer{
		uow:    uow,
		clock:  clk,
		config: config,
	}
}

func (r *Reclaimer) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	slog.Info("starting expiry reclaimer",
		"interval", r.config.Interval.String(),
		"batch_size", r.config.BatchSize)

	r.wg.Add(1)
	go r.run(ctx)

	return nil
}

func (r *Reclaimer) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	slog.Info("expiry reclaimer stopped")
}

func (r *Reclaimer) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			reclaimed, err := r.Sweep(ctx)
			if err != nil {
				slog.Error("reclaim sweep failed", "error", err.Error())
				continue
			}
			if reclaimed > 0 {
				slog.Info("reclaimed expired holds", "count", reclaimed)
			}
		}
	}
}

// Sweep runs one reclamation cycle and reports how many holds it
// cancelled. Exported so a standalone worker binary can drive it.
func (r *Reclaimer) Sweep(ctx context.Context) (int, error) {
	now := r.clock.Now()

	candidates, err := r.uow.CommandReads().ExpiredHoldIDs(ctx, now, r.config.BatchSize)
	if err != nil {
		return 0, errs.Wrap(err, "failed to list expired holds")
	}

	reclaimed := 0
	for _, id := range candidates {
		ok, err := r.reclaimOne(ctx, id, now)
		if err != nil {
			slog.Error("failed to reclaim hold", "booking_id", id.String(), "error", err.Error())
			continue
		}
		if ok {
			reclaimed++
		}
	}

	return reclaimed, nil
}

func (r *Reclaimer) reclaimOne(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var reclaimed bool
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Re-check the predicate at transaction time: a booking completed
		// or cancelled since selection affects zero rows and is skipped.
		expired, err := tx.Bookings().CancelIfExpired(ctx, id, now)
		if err != nil {
			return err
		}
		if !expired {
			return nil
		}

		if err := tx.Claims().ReleaseAllForBooking(ctx, id); err != nil {
			return err
		}

		reclaimed = true
		return nil
	})
	return reclaimed, err
}
