package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/prperemyshlev/task-manager/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestActivationMessage(t *testing.T) {
	subject, body, err := ActivationMessage("http://api.example.com/", "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "Account activation", subject)
	assert.Contains(t, body, `href="http://api.example.com/api/v1/user/activate/abc-123"`)
}

func TestSMTPSender_Send(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{
		Host:          "smtp.example.com",
		Port:          2525,
		Username:      "mailer",
		Password:      "secret",
		From:          "no-reply@example.com",
		RatePerMinute: 60,
	})

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	sender.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := sender.Send(context.Background(), "alice@example.com", "Hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: no-reply@example.com\r\n"))
	assert.Contains(t, gotMsg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\n<p>hi</p>"))
}

func TestSMTPSender_SendError(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 25})
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := sender.Send(context.Background(), "bob@example.com", "Hello", "body")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 25, RatePerMinute: 1})
	sender.send = func(string, smtp.Auth, string, []string, []byte) error { return nil }

	require.NoError(t, sender.Send(context.Background(), "a@example.com", "s", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, sender.Send(ctx, "a@example.com", "s", "b"))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(zap.NewNop()).Send(context.Background(), "a@example.com", "s", "b"))
}
