package upload

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically evicts abandoned upload sessions so memory stays
// bounded. TTL should be substantially larger than the interval; expiry lag
// is then bounded by one interval.
type Sweeper struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
}

func NewSweeper(store *Store, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, ttl: ttl, interval: interval}
}

// Run blocks, sweeping on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.SweepExpired(s.ttl); n > 0 {
				log.Printf("cleaned up %d expired upload sessions", n)
			}
		}
	}
}
