package services

import (
	"github.com/rs/zerolog"
)

// Mailer is the outbound notification channel. Sends are fire-and-forget:
// a failed email never fails the operation that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer writes mail to the log instead of a wire. It is the development
// sender; a real SMTP/provider sender would implement the same interface.
type LogMailer struct {
	Logger *zerolog.Logger
}

func NewLogMailer(logger *zerolog.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.Logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (dev sender)")
	return nil
}
