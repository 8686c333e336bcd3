// Package notify delivers operator notifications over SMTP.
package notify

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"carleadbot/pkg/ports/notifyport"
)

// Mailer sends plain-text mail to a single manager address.
type Mailer struct {
	host     string
	port     int
	from     string
	to       string
	username string
	password string
}

var _ notifyport.Notifier = (*Mailer)(nil)

// NewMailer validates the recipient and returns a mailer bound to one SMTP relay.
func NewMailer(host string, port int, from, to, username, password string) (*Mailer, error) {
	if !strings.Contains(to, "@") {
		return nil, fmt.Errorf("notify: recipient %q does not look like an address", to)
	}
	if host == "" {
		return nil, fmt.Errorf("notify: smtp host cannot be empty")
	}
	return &Mailer{
		host:     host,
		port:     port,
		from:     from,
		to:       to,
		username: username,
		password: password,
	}, nil
}

// Send delivers one notification. The dialing phase honors the context
// deadline; SMTP conversation itself is bounded by the relay.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify: context done before send: %w", err)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	msg := m.buildMessage(subject, body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.from, []string{m.to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("notify: failed to send mail to %s via %s: %w", m.to, addr, err)
		}
		log.Printf("[Send] Notification %q delivered to %s", subject, m.to)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: send to %s timed out: %w", m.to, ctx.Err())
	}
}

func (m *Mailer) buildMessage(subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: Telegram Bot <" + m.from + ">\r\n")
	sb.WriteString("To: " + m.to + "\r\n")
	sb.WriteString("Subject: " + sanitizeHeader(subject) + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// sanitizeHeader strips CR/LF so user-supplied text cannot inject headers.
func sanitizeHeader(v string) string {
	v = strings.ReplaceAll(v, "\r", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
