// Package ticker maps wall-clock time onto the auction countdown. The state
// machine only understands discrete tick events; this driver fires them at a
// configured cadence and raises expiry when the countdown hits zero.
package ticker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
)

// Dispatcher is the slice of the coordinator the driver needs.
type Dispatcher interface {
	State() engine.State
	Tick(ctx context.Context) engine.State
	Expire(ctx context.Context) (engine.State, error)
}

// Driver fires countdown events on a fixed interval.
type Driver struct {
	disp     Dispatcher
	interval time.Duration
	logger   *slog.Logger
}

// New creates a Driver over the given dispatcher.
func New(disp Dispatcher, interval time.Duration, logger *slog.Logger) *Driver {
	return &Driver{disp: disp, interval: interval, logger: logger}
}

// Run ticks the countdown until ctx is cancelled. Ticks fired while the
// auction is not in the bidding phase are inert, so the loop never needs to
// coordinate with phase changes happening on other goroutines.
func (d *Driver) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	d.logger.InfoContext(ctx, "countdown driver started",
		slog.Duration("interval", d.interval))

	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(ctx, "countdown driver stopped")
			return
		case <-t.C:
			st := d.disp.State()
			if st == nil || st.Phase() != engine.PhaseBidding {
				continue
			}
			st = d.disp.Tick(ctx)
			if b, ok := st.(engine.Bidding); ok && b.TimeRemaining == 0 {
				if _, err := d.disp.Expire(ctx); err != nil {
					d.logger.WarnContext(ctx, "expiry dispatch rejected", slog.Any("error", err))
				}
			}
		}
	}
}
