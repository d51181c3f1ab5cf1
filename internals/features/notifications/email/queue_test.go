package email

import (
	"context"
	"errors"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakySender struct {
	mu       sync.Mutex
	failures int // gagal sebanyak ini dulu
	calls    int
	sent     []Message
}

func (f *flakySender) Send(_ context.Context, m Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("provider unavailable")
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *flakySender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testMessage(t *testing.T, to string) Message {
	t.Helper()
	m, err := Render(TplClassEnrollment, mail.Address{Address: to}, TemplateData{ClassName: "Intro to Ballet"})
	require.NoError(t, err)
	return m
}

func runQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = q.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestQueueRetriesThenSends(t *testing.T) {
	sender := &flakySender{failures: 2}
	q := NewQueue(sender, QueueOptions{RatePerSecond: 1000, MaxRetries: 3, RetryDelay: time.Millisecond})
	runQueue(t, q)

	assert.Equal(t, 1, q.Enqueue(testMessage(t, "dancer@example.com")))

	assert.Eventually(t, func() bool { return q.Metrics().TotalSent == 1 }, 2*time.Second, 5*time.Millisecond)
	m := q.Metrics()
	assert.Equal(t, int64(2), m.TotalRetries)
	assert.Equal(t, int64(0), m.TotalFailed)
	assert.Equal(t, 3, sender.callCount())
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	sender := &flakySender{failures: 100}
	q := NewQueue(sender, QueueOptions{RatePerSecond: 1000, MaxRetries: 3, RetryDelay: time.Millisecond})
	runQueue(t, q)

	q.Enqueue(testMessage(t, "dancer@example.com"))

	assert.Eventually(t, func() bool { return q.Metrics().TotalFailed == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 4, sender.callCount())
	assert.Equal(t, int64(3), q.Metrics().TotalRetries)
}

func TestQueueRejectsInvalidRecipient(t *testing.T) {
	sender := &flakySender{}
	q := NewQueue(sender, QueueOptions{RatePerSecond: 1000})
	runQueue(t, q)

	q.Enqueue(testMessage(t, "not-an-address"))

	assert.Eventually(t, func() bool { return q.Metrics().TotalFailed == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, sender.callCount())
}

func TestEnqueueNeverBlocks(t *testing.T) {
	// tanpa Run: buffer penuh → sisanya di-drop
	q := NewQueue(&flakySender{}, QueueOptions{Size: 2})

	accepted := q.Enqueue(
		testMessage(t, "a@example.com"),
		testMessage(t, "b@example.com"),
		testMessage(t, "c@example.com"),
	)
	assert.Equal(t, 2, accepted)
	assert.Equal(t, int64(1), q.Metrics().TotalDropped)
	assert.Equal(t, 2, q.Metrics().Pending)
}

func TestQueueRateLimit(t *testing.T) {
	sender := &flakySender{}
	q := NewQueue(sender, QueueOptions{RatePerSecond: 20})
	runQueue(t, q)

	start := time.Now()
	for i := 0; i < 5; i++ {
		q.Enqueue(testMessage(t, "dancer@example.com"))
	}
	assert.Eventually(t, func() bool { return q.Metrics().TotalSent == 5 }, 3*time.Second, 5*time.Millisecond)
	// 5 pesan @20/s → minimal 4 jeda 50ms
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}
