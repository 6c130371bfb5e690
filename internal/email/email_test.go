package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confhub-backend/internal/config"
)

type captured struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestSender(cfg config.SMTPConfig, got *captured, err error) *EmailSender {
	s := NewEmailSender(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*got = captured{addr: addr, from: from, to: to, msg: string(msg)}
		return err
	}
	return s
}

var creds = config.SMTPConfig{Host: "smtp.test", Port: "587", Email: "noreply@confhub.test", Password: "pw"}

func TestSendSignInCode(t *testing.T) {
	t.Parallel()

	var got captured
	s := newTestSender(creds, &got, nil)

	require.NoError(t, s.SendSignInCode(context.Background(), "ada@example.com", "123456"))
	assert.Equal(t, "smtp.test:587", got.addr)
	assert.Equal(t, []string{"ada@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Your ConfHub sign-in code")
	assert.Contains(t, got.msg, "<h1>123456</h1>")
}

func TestSendReminder_EscapesTitle(t *testing.T) {
	t.Parallel()

	var got captured
	s := newTestSender(creds, &got, nil)

	require.NoError(t, s.SendReminder(context.Background(), "ada@example.com", "<b>AI</b> Week", "AI Week starts in 3 days", ""))
	assert.Contains(t, got.msg, "Subject: AI Week starts in 3 days")
	assert.Contains(t, got.msg, "&lt;b&gt;AI&lt;/b&gt; Week")
	assert.NotContains(t, got.msg, "Event website")
}

func TestSend_WithoutCredentialsSkipsSMTP(t *testing.T) {
	t.Parallel()

	var got captured
	s := newTestSender(config.SMTPConfig{Host: "smtp.test", Port: "587"}, &got, errors.New("must not be called"))

	require.NoError(t, s.SendSignInCode(context.Background(), "ada@example.com", "123456"))
	assert.Empty(t, got.addr)
}

func TestSend_WrapsTransportError(t *testing.T) {
	t.Parallel()

	var got captured
	s := newTestSender(creds, &got, errors.New("connection refused"))

	err := s.SendSignInCode(context.Background(), "ada@example.com", "123456")
	assert.ErrorContains(t, err, "failed to send email")
}

func TestSend_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got captured
	s := newTestSender(creds, &got, nil)
	assert.ErrorIs(t, s.SendSignInCode(ctx, "ada@example.com", "1"), context.Canceled)
}
