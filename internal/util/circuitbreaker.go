package util

import (
	"errors"

	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// NewCircuitBreaker builds a breaker that opens after FailureThreshold consecutive failures.
// State changes are logged and exported as a gauge.
func NewCircuitBreaker[T any](name string, logger *zap.Logger) *gobreaker.CircuitBreaker[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: constants.CircuitBreakerConfig.MaxRequests,
		Interval:    constants.CircuitBreakerConfig.Interval,
		Timeout:     constants.CircuitBreakerConfig.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.CircuitBreakerConfig.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerState(to))
		},
	})
}

// IsBreakerRejection reports whether err came from an open or saturated breaker rather than the call itself.
func IsBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
