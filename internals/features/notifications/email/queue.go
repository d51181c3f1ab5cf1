package email

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"danceflow_backend/internals/helpers/applog"
)

type QueueOptions struct {
	RatePerSecond int
	MaxRetries    int
	RetryDelay    time.Duration
	Size          int
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.RatePerSecond <= 0 {
		o.RatePerSecond = 10
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	if o.Size <= 0 {
		o.Size = 256
	}
	return o
}

type Metrics struct {
	TotalSent      int64         `json:"total_sent"`
	TotalFailed    int64         `json:"total_failed"`
	TotalRetries   int64         `json:"total_retries"`
	TotalDropped   int64         `json:"total_dropped"`
	AverageLatency time.Duration `json:"average_latency"`
	Pending        int           `json:"pending"`
}

// Queue is a buffered, rate-limited email worker. Enqueue never blocks;
// Run drains the buffer until its context is cancelled.
type Queue struct {
	sender Sender
	opts   QueueOptions
	ch     chan Message

	sent, failed, retries, dropped atomic.Int64
	attempts, latencyNanos         atomic.Int64

	lastSend time.Time
}

func NewQueue(sender Sender, opts QueueOptions) *Queue {
	opts = opts.withDefaults()
	return &Queue{
		sender: sender,
		opts:   opts,
		ch:     make(chan Message, opts.Size),
	}
}

// Enqueue returns how many messages were accepted. Messages beyond the buffer are dropped and logged.
func (q *Queue) Enqueue(msgs ...Message) int {
	accepted := 0
	for _, m := range msgs {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		select {
		case q.ch <- m:
			accepted++
		default:
			q.dropped.Add(1)
			applog.Warn("email queue full, message dropped", "id", m.ID, "to", m.To.Address)
		}
	}
	if accepted > 0 {
		applog.Info("emails added to queue", "count", accepted)
	}
	return accepted
}

func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-q.ch:
			if err := q.throttle(ctx); err != nil {
				q.failed.Add(1)
				return nil
			}
			q.deliver(ctx, m)
		}
	}
}

func (q *Queue) throttle(ctx context.Context) error {
	gap := time.Second / time.Duration(q.opts.RatePerSecond)
	if wait := gap - time.Since(q.lastSend); wait > 0 {
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
	q.lastSend = time.Now()
	return nil
}

func (q *Queue) deliver(ctx context.Context, m Message) {
	if err := m.Validate(); err != nil {
		q.failed.Add(1)
		applog.Error("email rejected", err, "id", m.ID, "to", m.To.Address)
		return
	}

	for attempt := 0; ; attempt++ {
		start := time.Now()
		err := q.sender.Send(ctx, m)
		latency := time.Since(start)
		q.attempts.Add(1)
		q.latencyNanos.Add(int64(latency))

		if err == nil {
			q.sent.Add(1)
			applog.Info("email sent", "id", m.ID, "to", m.To.Address, "latency", latency)
			return
		}
		if attempt >= q.opts.MaxRetries {
			q.failed.Add(1)
			applog.Error("email failed after max retries", err, "id", m.ID, "to", m.To.Address, "attempts", attempt+1)
			return
		}
		q.retries.Add(1)
		if sleepCtx(ctx, q.opts.RetryDelay) != nil {
			q.failed.Add(1)
			return
		}
	}
}

func (q *Queue) Metrics() Metrics {
	m := Metrics{
		TotalSent:    q.sent.Load(),
		TotalFailed:  q.failed.Load(),
		TotalRetries: q.retries.Load(),
		TotalDropped: q.dropped.Load(),
		Pending:      len(q.ch),
	}
	if n := q.attempts.Load(); n > 0 {
		m.AverageLatency = time.Duration(q.latencyNanos.Load() / n)
	}
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
