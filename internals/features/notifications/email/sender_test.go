package email

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/configs"
)

func configsEmail(provider string) configs.EmailConfig {
	return configs.EmailConfig{Provider: provider, FromEmail: "studio@example.com", FromName: "Studio"}
}

func TestConsoleSender(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewConsoleSender(buf)

	msg := testMessage(t, "jane@example.com")
	require.NoError(t, s.Send(context.Background(), msg))

	assert.Contains(t, buf.String(), "Subject: Welcome to Intro to Ballet!")
	assert.Len(t, s.Sent(), 1)
}

func TestSendgridSender(t *testing.T) {
	var gotAuth, gotBody string
	status := http.StatusAccepted
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := NewSendgridSender("SG.test", mail.Address{Name: "Studio", Address: "studio@example.com"}).WithHost(srv.URL)
	msg := testMessage(t, "jane@example.com")

	require.NoError(t, s.Send(context.Background(), msg))
	assert.Equal(t, "Bearer SG.test", gotAuth)
	assert.Contains(t, gotBody, "jane@example.com")
	assert.Contains(t, gotBody, "Welcome to Intro to Ballet!")

	status = http.StatusBadRequest
	assert.Error(t, s.Send(context.Background(), msg))
}

func TestSMTPSenderBuildsMessage(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "user", "pass", mail.Address{Name: "Studio", Address: "studio@example.com"})
	m := s.build(testMessage(t, "jane@example.com"))

	assert.Equal(t, []string{"Welcome to Intro to Ballet!"}, m.GetHeader("Subject"))
	assert.Len(t, m.GetHeader("To"), 1)
	assert.Contains(t, m.GetHeader("To")[0], "jane@example.com")
}

func TestSendRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSMTPSender("127.0.0.1", 1, "", "", mail.Address{Address: "studio@example.com"})
	assert.ErrorIs(t, s.Send(ctx, testMessage(t, "jane@example.com")), context.Canceled)
}
