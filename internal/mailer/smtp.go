package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPSender delivers messages over plain SMTP. Auth is optional; when a
// username is configured, PLAIN auth is used.
type SMTPSender struct {
	Addr     string
	Username string
	Password string

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender constructs a sender targeting addr (host:port).
func NewSMTPSender(addr, username, password string) *SMTPSender {
	return &SMTPSender{
		Addr:     addr,
		Username: username,
		Password: password,
		sendMail: smtp.SendMail,
	}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("smtp send: no recipients")
	}
	var auth smtp.Auth
	if s.Username != "" {
		host, _, err := net.SplitHostPort(s.Addr)
		if err != nil {
			host = s.Addr
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}
	if err := s.sendMail(s.Addr, auth, msg.From, msg.To, encode(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// encode renders the RFC 5322 wire form with CRLF line endings.
func encode(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.From)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

var _ Sender = (*SMTPSender)(nil)
