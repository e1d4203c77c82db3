package mail

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer records messages in the log instead of delivering them.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer returns a LogMailer writing to log.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (Receipt, error) {
	rcpt, err := validate(msg)
	if err != nil {
		return Receipt{}, err
	}
	id := uuid.NewString()
	m.log.InfoContext(ctx, "mail not delivered: smtp disabled",
		"message_id", id,
		"to", rcpt,
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return Receipt{MessageID: id}, nil
}
