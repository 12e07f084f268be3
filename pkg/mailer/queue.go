package mailer

import "context"

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueMailer hands messages to the email worker through RabbitMQ. A nil
// error means the job was accepted by the broker, not that mail was delivered.
type QueueMailer struct {
	Pub Publisher
}

func NewQueueMailer(pub Publisher) *QueueMailer {
	return &QueueMailer{Pub: pub}
}

func (q *QueueMailer) Send(ctx context.Context, msg Message) error {
	return q.Pub.PublishJSON(ctx, EmailJob{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
}
