package chaos

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sre-sandbox/shopping-api/internal/config"
)

var (
	// ErrDatabaseFailure is returned when the data-layer gate fires.
	ErrDatabaseFailure = errors.New("database connection failed")
	// ErrPaymentFailure is returned when the payment gate fires.
	ErrPaymentFailure = errors.New("payment processing failed")
)

var injectedFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "injected_failures_total",
		Help: "Injected failures by gate",
	},
	[]string{"gate"},
)

// FailureInjector holds the two probabilistic failure gates. Each call is an
// independent Bernoulli trial; the gates keep no state between calls and are
// not rate-limited.
type FailureInjector struct {
	dbRate      float64
	paymentRate float64
	rng         Rand
	log         *slog.Logger
}

// NewFailureInjector creates an injector with the configured gate rates.
func NewFailureInjector(cfg config.FaultsConfig, rng Rand, log *slog.Logger) *FailureInjector {
	return &FailureInjector{
		dbRate:      cfg.DBFailureRate,
		paymentRate: cfg.PaymentFailureRate,
		rng:         rng,
		log:         log,
	}
}

// Storage rolls the data-layer gate. It returns ErrDatabaseFailure when the
// gate fires and nil otherwise.
func (f *FailureInjector) Storage() error {
	if f.rng.Float64() < f.dbRate {
		f.log.Error("database connection timeout after 30s")
		injectedFailures.WithLabelValues("storage").Inc()
		return ErrDatabaseFailure
	}
	return nil
}

// Payment rolls the payment gate. It returns ErrPaymentFailure when the
// gate fires and nil otherwise.
func (f *FailureInjector) Payment() error {
	if f.rng.Float64() < f.paymentRate {
		f.log.Error("payment gateway timeout - transaction failed")
		injectedFailures.WithLabelValues("payment").Inc()
		return ErrPaymentFailure
	}
	return nil
}
