package mailer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

// Request is an outbound message handed to the relay.
type Request struct {
	Recipient string
	Subject   string
	Body      string
	Category  models.NotificationCategory
}

// Dispatch is the relay's resolved outcome. Status is SENT or FAILED; the
// relay never queues.
type Dispatch struct {
	Status    models.DeliveryStatus
	Recipient string
	Category  models.NotificationCategory
	Subject   string
}

// Relay dispatches messages to guardians. Implementations always resolve;
// failures are reported through Dispatch.Status, not an error.
type Relay interface {
	Send(ctx context.Context, req Request) Dispatch
}

// SimulatedRelay stands in for the cloud mail relay. It waits a fixed
// latency and fails with a configured probability.
type SimulatedRelay struct {
	latency     time.Duration
	failureRate float64
	logger      *zap.Logger

	mu   sync.Mutex
	rand *rand.Rand
}

// Option customises a SimulatedRelay.
type Option func(*SimulatedRelay)

// WithRand injects a deterministic random source.
func WithRand(r *rand.Rand) Option {
	return func(s *SimulatedRelay) {
		s.rand = r
	}
}

// NewSimulatedRelay constructs the relay. Zero latency and failure rate are
// valid; a negative failure rate is treated as zero.
func NewSimulatedRelay(latency time.Duration, failureRate float64, logger *zap.Logger, opts ...Option) *SimulatedRelay {
	if failureRate < 0 {
		failureRate = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SimulatedRelay{
		latency:     latency,
		failureRate: failureRate,
		logger:      logger,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send resolves after the configured latency unless the context ends first.
// A context cancellation resolves as FAILED rather than erroring, so the
// caller can always log an outcome.
func (s *SimulatedRelay) Send(ctx context.Context, req Request) Dispatch {
	dispatch := Dispatch{
		Status:    models.DeliverySent,
		Recipient: req.Recipient,
		Category:  req.Category,
		Subject:   req.Subject,
	}

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			dispatch.Status = models.DeliveryFailed
			return dispatch
		case <-timer.C:
		}
	}

	s.mu.Lock()
	roll := s.rand.Float64()
	s.mu.Unlock()

	if roll < s.failureRate {
		dispatch.Status = models.DeliveryFailed
		s.logger.Warn("relay dispatch failed",
			zap.String("recipient", req.Recipient),
			zap.String("category", string(req.Category)),
		)
		return dispatch
	}

	s.logger.Debug("relay dispatch sent",
		zap.String("recipient", req.Recipient),
		zap.String("category", string(req.Category)),
	)
	return dispatch
}
