package email

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"
)

// Message is one rendered email for one recipient.
type Message struct {
	ID      string
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

// Validate memeriksa alamat tujuan dan konten minimum.
func (m Message) Validate() error {
	if _, err := mail.ParseAddress(m.To.Address); err != nil {
		return errors.Wrapf(err, "invalid recipient %q", m.To.Address)
	}
	if strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Text) == "" {
		return errors.New("subject and text content are required")
	}
	return nil
}

// HTMLOrText mengembalikan HTML kalau ada, kalau tidak teks biasa.
func (m Message) HTMLOrText() string {
	if strings.TrimSpace(m.HTML) != "" {
		return m.HTML
	}
	return m.Text
}
