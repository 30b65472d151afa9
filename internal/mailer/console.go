package mailer

import (
	"context"
	"sync"

	"github.com/edhub-platform/school-service/internal/utils"
)

// ConsoleMailer logs messages instead of delivering them. Used in
// development and as the test double.
type ConsoleMailer struct {
	logger utils.Logger

	mu   sync.Mutex
	sent []Message
}

func NewConsoleMailer(logger utils.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg *Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, *msg)
	m.mu.Unlock()

	m.logger.Info("Email (console)",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}

// Sent returns a copy of every message handed to Send.
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
