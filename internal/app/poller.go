package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/shopfront/internal/pages"
	"github.com/five82/shopfront/internal/shopapi"
	"github.com/five82/shopfront/internal/state"
)

const maxBackoff = 30 * time.Second

// StartPoller runs refresh every interval until ctx is done. Consecutive
// failures stretch the wait exponentially up to maxBackoff. It returns
// immediately; the returned channel closes when the goroutine exits.
func StartPoller(ctx context.Context, interval time.Duration, logger *zap.Logger, refresh func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		failures := 0
		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if err := refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				logger.Warn("catalog refresh failed",
					zap.Error(err),
					zap.Int("failures", failures),
					zap.Duration("next_in", calculateBackoff(failures, interval)))
				continue
			}
			failures = 0
		}
	}()
	return done
}

// calculateBackoff doubles base for every failure, capped at maxBackoff. It
// never returns less than base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		failures = 16
	}
	d := base << failures
	if d <= 0 || d > maxBackoff {
		d = maxBackoff
	}
	return max(d, base)
}

type catalogFetcher interface {
	FetchProducts(ctx context.Context, limit int) (shopapi.ProductList, error)
}

type pageReloader interface {
	ReloadIf(ctx context.Context, path string) bool
}

// catalogRefresh returns a poller step that re-renders the catalog page when
// the catalog has changed since it was shown. Other pages own the listing, so
// the step does nothing unless the catalog is on screen, and the reload is
// skipped if the shopper has moved on while the fetch was in flight.
func catalogRefresh(store *state.Store, api catalogFetcher, limit int, nav pageReloader) func(context.Context) error {
	return func(ctx context.Context) error {
		if store.CurrentPath() != pages.PathProducts {
			return nil
		}
		list, err := api.FetchProducts(ctx, limit)
		if err != nil {
			return err
		}
		if !catalogChanged(store.State().Products, list.Products) {
			return nil
		}
		nav.ReloadIf(ctx, pages.PathProducts)
		return nil
	}
}

// catalogChanged compares the fields a shopper sees change: identity, price,
// discount and stock.
func catalogChanged(shown, fresh []shopapi.Product) bool {
	if len(shown) != len(fresh) {
		return true
	}
	for i := range shown {
		a, b := shown[i], fresh[i]
		if a.ID != b.ID || a.Price != b.Price || a.DiscountPercentage != b.DiscountPercentage || a.Stock != b.Stock {
			return true
		}
	}
	return false
}
