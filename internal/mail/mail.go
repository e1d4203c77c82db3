// Package mail delivers outbound HTML email. The SMTP mailer is used when a
// host is configured; otherwise LogMailer writes each message to the log so
// development setups can follow confirmation links without a mail server.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Message is an outbound email with a single recipient.
type Message struct {
	// To may be a bare address or "Name <address>".
	To      string
	Subject string
	HTML    string
}

// Receipt identifies an accepted message.
type Receipt struct {
	MessageID string
}

// Mailer sends messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// validate checks the parts of a message every Mailer relies on and returns
// the bare recipient address.
func validate(msg Message) (string, error) {
	if strings.TrimSpace(msg.Subject) == "" {
		return "", errors.New("mail: subject is required")
	}
	addr, err := mail.ParseAddress(msg.To)
	if err != nil {
		return "", fmt.Errorf("mail: invalid recipient %q: %w", msg.To, err)
	}
	return addr.Address, nil
}

// escapeHeader strips line breaks so user-controlled text cannot inject headers.
func escapeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return value
}
