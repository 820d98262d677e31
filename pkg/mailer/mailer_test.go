package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPValidatesConfig(t *testing.T) {
	_, err := NewSMTP(config.SMTPConfig{Port: 587})
	require.Error(t, err)

	_, err = NewSMTP(config.SMTPConfig{Host: "smtp.gmail.com"})
	require.Error(t, err)

	m, err := NewSMTP(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587, User: "shop@cutiefy.in"})
	require.NoError(t, err)
	require.Equal(t, "shop@cutiefy.in", m.From())
}

func TestFromPrefersExplicitSender(t *testing.T) {
	m, err := NewSMTP(config.SMTPConfig{Host: "h", Port: 25, User: "user@x", From: "orders@cutiefy.in"})
	require.NoError(t, err)
	require.Equal(t, "orders@cutiefy.in", m.From())
}

func TestSendHonorsCanceledContext(t *testing.T) {
	m, err := NewSMTP(config.SMTPConfig{Host: "h", Port: 25})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err = m.Send(ctx, Message{To: "a@b.c", Subject: "s", HTML: "<p>hi</p>"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
