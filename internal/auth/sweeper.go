package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSweepInterval is how often expired tokens are reclaimed.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically deletes expired tokens. It runs fully decoupled from
// request handling: Validate rejects aged-out tokens on its own, so a failed
// sweep costs storage, never correctness.
type Sweeper struct {
	sessions *Sessions
	interval time.Duration
	log      zerolog.Logger
}

func NewSweeper(sessions *Sessions, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{sessions: sessions, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// Sweep failures are logged and the loop continues.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.sessions.SweepExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("token sweep failed")
		return
	}
	if count > 0 {
		s.log.Info().Int64("deleted", count).Msg("swept expired tokens")
	}
}
