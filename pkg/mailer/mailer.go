package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Message is a fully rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers (or hands off for delivery) a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer stands in when MAIL_SEND_ENABLED=false. Bodies are not logged
// since they carry reset links.
type LogMailer struct {
	Logger *logrus.Logger
}

func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if m.Logger != nil {
		m.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("mail sending disabled; message dropped")
	}
	return nil
}
