package templates

import (
	"encoding/json"
	"time"
)

// EmailData defines standard fields for email templates.
type EmailData struct {
	Email       string `json:"Email"`
	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`
	ClientURL   string `json:"ClientURL"`

	ResetURL string `json:"ResetURL"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// Option pattern
type Option func(*EmailData)

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func NewPasswordResetData(company, appName, clientURL, email string, opts ...Option) EmailData {
	d := EmailData{
		Email:       email,
		CompanyName: company,
		AppName:     appName,
		ClientURL:   clientURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
