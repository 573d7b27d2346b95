package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/dtroode/blogapi/internal/model"
)

// sendMailFunc matches smtp.SendMail; replaced in tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

var _ model.Mailer = (*SMTP)(nil)

// SMTP delivers plain-text mail through a single SMTP relay.
type SMTP struct {
	host     string
	port     string
	username string
	password string
	from     string
	send     sendMailFunc
}

// NewSMTP creates a mailer for the given relay. Auth is skipped when
// username is empty.
func NewSMTP(host, port, username, password, from string) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
	}
}

// Send delivers a single message to one recipient.
func (m *SMTP) Send(_ context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := buildMessage(m.from, to, subject, body)

	if err := m.send(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
