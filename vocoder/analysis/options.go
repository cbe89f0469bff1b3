package analysis

import (
	"github.com/cwbudde/algo-world/internal/arena"
	"github.com/cwbudde/algo-world/vocoder"
)

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	framePeriod float64
	pool        *arena.Pool
}

var defaultPool = arena.NewPool()

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		framePeriod: vocoder.DefaultFramePeriod,
		pool:        defaultPool,
	}
}

// WithFramePeriod sets the analysis hop in milliseconds. Invalid values are
// reported by NewSession.
func WithFramePeriod(ms float64) Option {
	return func(cfg *sessionConfig) {
		cfg.framePeriod = ms
	}
}

// WithArenaPool makes the session draw its buffers from pool.
func WithArenaPool(pool *arena.Pool) Option {
	return func(cfg *sessionConfig) {
		if pool != nil {
			cfg.pool = pool
		}
	}
}

func applyOptions(opts []Option) sessionConfig {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
