package mailer

import (
	"fmt"

	mailtpl "github.com/oksasatya/go-movie-catalog/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the rendered fields or Template+Data are set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "password_reset"
	Data     map[string]any `json:"data,omitempty"`
}

// Message renders the job into a deliverable message.
func (j EmailJob) Message() (Message, error) {
	if j.To == "" {
		return Message{}, fmt.Errorf("email job has no recipient")
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return Message{}, fmt.Errorf("email job needs a template or subject with text/html")
		}
		return Message{To: j.To, Subject: j.Subject, Text: j.Text, HTML: j.HTML}, nil
	}
	subject, text, html, err := mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return Message{}, fmt.Errorf("render %s: %w", j.Template, err)
	}
	return Message{To: j.To, Subject: subject, Text: text, HTML: html}, nil
}
