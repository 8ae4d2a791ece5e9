package chaos

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sre-sandbox/shopping-api/internal/config"
)

// Tier identifies one of the four route categories, each with its own
// configured base latency.
type Tier string

const (
	TierBase     Tier = "base"
	TierProduct  Tier = "product"
	TierCart     Tier = "cart"
	TierCheckout Tier = "checkout"
)

var simulatedLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "simulated_latency_seconds",
		Help:    "Realized simulated latency per route tier",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"tier"},
)

// LatencySimulator computes and applies the artificial delay for a request:
// tier base duration, times the chaos multiplier when chaos mode is on,
// plus uniform jitter in [-20%, +20%].
type LatencySimulator struct {
	tiers      map[Tier]time.Duration
	chaosMode  bool
	multiplier int
	rng        Rand
	sleep      func(time.Duration)
}

// NewLatencySimulator creates a simulator from the configured tier latencies.
func NewLatencySimulator(cfg config.LatencyConfig, rng Rand) *LatencySimulator {
	return &LatencySimulator{
		tiers: map[Tier]time.Duration{
			TierBase:     time.Duration(cfg.BaseMS) * time.Millisecond,
			TierProduct:  time.Duration(cfg.ProductMS) * time.Millisecond,
			TierCart:     time.Duration(cfg.CartMS) * time.Millisecond,
			TierCheckout: time.Duration(cfg.CheckoutMS) * time.Millisecond,
		},
		chaosMode:  cfg.ChaosMode,
		multiplier: cfg.ChaosMultiplier,
		rng:        rng,
		sleep:      time.Sleep,
	}
}

// Apply blocks the calling goroutine for the simulated delay of the given
// tier and returns the realized delay so the caller can surface it to the
// client. Only the handler serving this request stalls; a negative result
// from jitter is clamped to zero.
func (s *LatencySimulator) Apply(tier Tier) time.Duration {
	effective := s.tiers[tier]
	if s.chaosMode {
		effective *= time.Duration(s.multiplier)
	}

	jitter := time.Duration((s.rng.Float64()*0.4 - 0.2) * float64(effective))
	realized := effective + jitter
	if realized < 0 {
		realized = 0
	}

	s.sleep(realized)
	simulatedLatency.WithLabelValues(string(tier)).Observe(realized.Seconds())

	return realized
}

// ChaosMode reports whether the chaos amplification flag is enabled.
func (s *LatencySimulator) ChaosMode() bool {
	return s.chaosMode
}
