package email

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"danceflow_backend/internals/configs"
)

// Sender delivers one message. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender memilih provider dari EMAIL_PROVIDER.
func NewSender(cfg configs.EmailConfig) (Sender, error) {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromEmail}
	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("SENDGRID_API_KEY is required for sendgrid provider")
		}
		return NewSendgridSender(cfg.SendgridAPIKey, from), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, errors.New("SMTP_HOST is required for smtp provider")
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, from), nil
	case "", "console":
		return NewConsoleSender(os.Stdout), nil
	default:
		return nil, errors.Errorf("unknown email provider %q", cfg.Provider)
	}
}

/* =========================================================
   Console (dev / test)
========================================================= */

type ConsoleSender struct {
	mu   sync.Mutex
	out  io.Writer
	sent []Message
}

func NewConsoleSender(out io.Writer) *ConsoleSender {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleSender{out: out}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.out, "To: %s\nSubject: %s\n\n%s\n%s\n",
		msg.To.String(), msg.Subject, msg.Text, strings.Repeat("-", 60))
	if err != nil {
		return errors.Wrap(err, "writing console email")
	}
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of every message written so far.
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
