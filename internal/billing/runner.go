package billing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/imobo/imobo/internal/contract"
)

// Runner periodically sweeps active contracts and generates any missing
// payment schedules. A contract activated between ticks gets its schedule
// on the next sweep; the existence guard makes repeated sweeps harmless.
type Runner struct {
	svc      *Service
	interval time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewRunner(svc *Service, interval time.Duration) *Runner {
	return &Runner{
		svc:      svc,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the background sweep loop. An initial sweep runs
// immediately so a restart does not wait a full interval.
func (r *Runner) Start() {
	r.wg.Add(1)

	go r.run()

	slog.Info("billing runner started", "interval", r.interval)
}

// Stop shuts the loop down and waits for an in-flight sweep to finish.
func (r *Runner) Stop() {
	r.once.Do(func() { close(r.stop) })
	r.wg.Wait()

	slog.Info("billing runner stopped")
}

func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if err := r.Sweep(context.Background()); err != nil {
		slog.Error("billing sweep failed", "error", err)
	}

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if err := r.Sweep(context.Background()); err != nil {
				slog.Error("billing sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one generation pass over all active contracts. A failure on
// one contract is logged and does not block the rest of the batch; only a
// failure to list contracts aborts the sweep.
func (r *Runner) Sweep(ctx context.Context) error {
	active := contract.StatusActive

	contracts, err := r.svc.contracts.ListContracts(ctx, contract.ListFilter{Status: &active})
	if err != nil {
		return err
	}

	var generated int

	for _, c := range contracts {
		payments, err := r.svc.GenerateSchedule(ctx, c.ID, false)
		if err != nil {
			slog.Error("schedule generation failed",
				"contract_id", c.ID, "error", err)

			continue
		}

		if len(payments) > 0 {
			slog.Info("generated payment schedule",
				"contract_id", c.ID, "cycles", len(payments))

			generated++
		}
	}

	if generated > 0 {
		slog.Info("billing sweep complete",
			"contracts", len(contracts), "schedules_generated", generated)
	}

	return nil
}
