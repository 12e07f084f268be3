package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-movie-catalog/pkg/mailer/templates"
)

type recordingPublisher struct {
	bodies []any
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return p.err
}

func TestQueueMailer_Send(t *testing.T) {
	pub := &recordingPublisher{}
	q := NewQueueMailer(pub)

	err := q.Send(context.Background(), Message{To: "a@x.com", Subject: "s", HTML: "<p>h</p>"})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)
	assert.Equal(t, EmailJob{To: "a@x.com", Subject: "s", HTML: "<p>h</p>"}, pub.bodies[0])

	pub.err = errors.New("channel closed")
	assert.EqualError(t, q.Send(context.Background(), Message{To: "a@x.com"}), "channel closed")
}

func TestEmailJob_Message(t *testing.T) {
	raw := EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}
	msg, err := raw.Message()
	require.NoError(t, err)
	assert.Equal(t, Message{To: "a@x.com", Subject: "hi", Text: "body"}, msg)

	_, err = EmailJob{Subject: "hi", Text: "body"}.Message()
	assert.Error(t, err)

	_, err = EmailJob{To: "a@x.com", Subject: "hi"}.Message()
	assert.Error(t, err)

	tpl := EmailJob{
		To:       "a@x.com",
		Template: mailtpl.PasswordReset,
		Data:     mailtpl.ToMap(mailtpl.NewPasswordResetData("", "movies", "http://c", "a@x.com", mailtpl.WithResetURL("http://c/r/t"))),
	}
	msg, err = tpl.Message()
	require.NoError(t, err)
	assert.Equal(t, "Password Reset link", msg.Subject)
	assert.Contains(t, msg.HTML, "http://c/r/t")

	_, err = EmailJob{To: "a@x.com", Template: "missing"}.Message()
	assert.Error(t, err)
}

func TestLogMailer_DoesNotLogBody(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	err := NewLogMailer(logger).Send(context.Background(), Message{To: "a@x.com", Subject: "Password Reset link", HTML: "secret-token"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a@x.com")
	assert.NotContains(t, buf.String(), "secret-token")
}
