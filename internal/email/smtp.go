package email

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/prperemyshlev/task-manager/internal/config"
	"golang.org/x/time/rate"
)

// SMTPSender delivers mail through an SMTP relay, at most RatePerMinute messages per minute
type SMTPSender struct {
	addr    string
	from    string
	auth    smtp.Auth
	limiter *rate.Limiter
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender for the relay described by cfg
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from:    cfg.From,
		auth:    auth,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		send:    smtp.SendMail,
	}
}

// Send waits for a delivery slot, then hands the message to the relay
func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("email rate limit: %w", err)
	}

	msg := buildMessage(s.from, to, subject, html)
	if err := s.send(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

func buildMessage(from, to, subject, html string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(html)
	return buf.Bytes()
}
