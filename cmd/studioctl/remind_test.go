package main

import (
	"bytes"
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/notifications/email"
)

func TestDrainWaitsForDelivery(t *testing.T) {
	var buf bytes.Buffer
	sender := email.NewConsoleSender(&buf)
	q := email.NewQueue(sender, email.QueueOptions{RatePerSecond: 100})

	m, err := email.Render(email.TplClassReminder, mail.Address{Address: "ana@example.com"}, email.TemplateData{
		ClassName: "Intro to Ballet",
		Date:      "2026-03-02",
		Time:      "18:00",
	})
	require.NoError(t, err)
	n := q.Enqueue(m, m)
	require.Equal(t, 2, n)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, drain(ctx, q, n))
	assert.EqualValues(t, 2, q.Metrics().TotalSent)
	assert.Len(t, sender.Sent(), 2)
}

func TestDrainTimesOut(t *testing.T) {
	q := email.NewQueue(email.NewConsoleSender(&bytes.Buffer{}), email.QueueOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := drain(ctx, q, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
