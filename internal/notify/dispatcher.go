package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ContestBot_Go/internal/event"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/worker"
)

var errNoSinks = errors.New("no notification sinks configured")

// Dispatcher turns contribution events into notifications. Delivery runs on the
// worker pool; handlers return immediately and never report delivery failures.
type Dispatcher struct {
	pool  *worker.Pool
	sinks []Sink

	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

// DispatcherConfig sizes the dedupe window
type DispatcherConfig struct {
	DedupeSize int
	DedupeTTL  time.Duration
}

// NewDispatcher creates a dispatcher delivering to every sink
func NewDispatcher(pool *worker.Pool, sinks []Sink, cfg DispatcherConfig) (*Dispatcher, error) {
	if len(sinks) == 0 {
		return nil, errNoSinks
	}
	if cfg.DedupeSize <= 0 {
		cfg.DedupeSize = DefaultDedupeSize
	}
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = DefaultDedupeTTL
	}
	return &Dispatcher{
		pool:  pool,
		sinks: sinks,
		seen:  expirable.NewLRU[string, struct{}](cfg.DedupeSize, nil, cfg.DedupeTTL),
	}, nil
}

// Subscribe registers the dispatcher's handlers on the bus
func (d *Dispatcher) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ContributionSubmitted, d.handleSubmitted)
	bus.Subscribe(event.ContributionDecided, d.handleDecided)
}

func (d *Dispatcher) handleSubmitted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ContributionSubmittedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUndecodablePayload, "type", evt.Type, "error", err)
		return nil
	}
	d.dispatch(ctx, fromSubmitted(payload))
	return nil
}

func (d *Dispatcher) handleDecided(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ContributionDecidedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUndecodablePayload, "type", evt.Type, "error", err)
		return nil
	}
	d.dispatch(ctx, fromDecided(payload))
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, n Notification) {
	log := logger.FromContext(ctx)
	key := n.DedupeKey()

	if !d.markSeen(key) {
		log.Debug(LogMsgDuplicateSkipped, "key", key)
		return
	}

	requestID := logger.GetRequestID(ctx)
	job := worker.JobFunc(func(jobCtx context.Context) error {
		if requestID != "" {
			jobCtx = logger.WithRequestID(jobCtx, requestID)
		}
		d.deliver(jobCtx, n)
		return nil
	})

	if !d.pool.TryEnqueue(job) {
		// Forget the key so a redelivered event gets another chance
		d.forget(key)
		for _, sink := range d.sinks {
			metrics.NotificationFailures.WithLabelValues(sink.Name()).Inc()
		}
		log.Warn(LogMsgQueueRejected, "key", key)
		return
	}
	log.Debug(LogMsgNotificationQueued, "key", key)
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	log := logger.FromContext(ctx)
	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			metrics.NotificationFailures.WithLabelValues(sink.Name()).Inc()
			log.Warn(LogMsgDeliveryFailed, "channel", sink.Name(), "contribution_id", n.ContributionID, "kind", n.Kind, "error", err)
			continue
		}
		metrics.NotificationsSent.WithLabelValues(sink.Name()).Inc()
	}
}

// markSeen records key and reports whether it was new
func (d *Dispatcher) markSeen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen.Contains(key) {
		return false
	}
	d.seen.Add(key, struct{}{})
	return true
}

func (d *Dispatcher) forget(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen.Remove(key)
}
