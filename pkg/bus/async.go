// Package bus decouples the request path from the visualization event bus.
//
// Publication is best-effort by design: consumers of
// geometry.event.manifold_update are dashboards, not systems of record, so
// a slow or unreachable broker must never stall or fail a compute request.
// AsyncPublisher enforces that with a bounded queue drained by a single
// background worker; a full queue drops the event and an unreachable
// broker costs nothing but a log line and a counter tick.
package bus

import (
	"context"
	"sync"
	"time"

	"github.com/cipheratlas/geometry-engine/pkg/observability"
)

// DefaultQueueSize bounds the number of events waiting for the worker.
const DefaultQueueSize = 256

// publishTimeout caps how long the worker waits on the transport for a
// single event.
const publishTimeout = 5 * time.Second

// AsyncPublisher wraps a Publisher with a bounded queue and a background
// worker so enqueueing never blocks the request path.
type AsyncPublisher struct {
	transport Publisher
	logger    Logger
	observer  observability.Observer

	queue chan VisualizationEvent

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewAsyncPublisher constructs an AsyncPublisher over the given transport.
// queueSize <= 0 selects DefaultQueueSize.
func NewAsyncPublisher(transport Publisher, logger Logger, queueSize int) *AsyncPublisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &AsyncPublisher{
		transport: transport,
		logger:    logger,
		queue:     make(chan VisualizationEvent, queueSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// WithObserver sets the observer for this publisher and returns it for
// method chaining.
func (p *AsyncPublisher) WithObserver(obs observability.Observer) *AsyncPublisher {
	p.observer = obs
	return p
}

// Start launches the background worker. Safe to call once; the fx
// lifecycle does this on OnStart.
func (p *AsyncPublisher) Start() {
	p.startOnce.Do(func() {
		go p.run()
	})
}

// Stop drains the queue and stops the worker. Events still queued are
// published with best effort before shutdown completes.
func (p *AsyncPublisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		<-p.stopped
	})
}

// Enqueue hands an event to the worker without blocking. When the queue is
// full the event is dropped, logged, and counted; the caller is never
// delayed or failed.
func (p *AsyncPublisher) Enqueue(event VisualizationEvent) {
	select {
	case p.queue <- event:
	default:
		p.logger.Warn("event queue full, dropping visualization event", nil, map[string]interface{}{
			"document_id": event.DocumentID,
			"topic":       TopicManifoldUpdate,
		})
		p.observe("drop", event.DocumentID, 0, ErrQueueFull, 0)
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.stopped)
	for {
		select {
		case event := <-p.queue:
			p.publish(event)
		case <-p.done:
			// Drain whatever is left, then exit.
			for {
				select {
				case event := <-p.queue:
					p.publish(event)
				default:
					return
				}
			}
		}
	}
}

func (p *AsyncPublisher) publish(event VisualizationEvent) {
	start := time.Now()

	body, err := event.Encode()
	if err != nil {
		p.logger.Error("failed to encode visualization event", err, map[string]interface{}{
			"document_id": event.DocumentID,
		})
		p.observe("publish", event.DocumentID, time.Since(start), err, 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.transport.Publish(ctx, TopicManifoldUpdate, body); err != nil {
		p.logger.Error("failed to publish visualization event", err, map[string]interface{}{
			"document_id": event.DocumentID,
			"topic":       TopicManifoldUpdate,
		})
		p.observe("publish", event.DocumentID, time.Since(start), err, int64(len(body)))
		return
	}

	p.logger.Debug("visualization event published", nil, map[string]interface{}{
		"document_id": event.DocumentID,
		"topic":       TopicManifoldUpdate,
	})
	p.observe("publish", event.DocumentID, time.Since(start), nil, int64(len(body)))
}

func (p *AsyncPublisher) observe(op, documentID string, d time.Duration, err error, size int64) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "bus",
		Operation:   op,
		Resource:    TopicManifoldUpdate,
		SubResource: documentID,
		Duration:    d,
		Err:         err,
		Size:        size,
	})
}
