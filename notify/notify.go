// Package notify sends forecasts by e-mail.
package notify

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// SMTP locates and authenticates against an SMTP server.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
}

// sender sends one e-mail.
type sender func(e *email.Email) error

// Mailer sends forecasts by e-mail.
type Mailer struct {
	from   string
	send   sender
	logger logrus.FieldLogger
}

// NewMailer creates a Mailer sending from 'from' through 'server'.
func NewMailer(server SMTP, from string, logger logrus.FieldLogger) *Mailer {
	addr := fmt.Sprintf("%s:%d", server.Host, server.Port)
	var auth smtp.Auth
	if server.User != "" {
		auth = smtp.PlainAuth("", server.User, server.Password, server.Host)
	}
	return &Mailer{
		from:   from,
		send:   func(e *email.Email) error { return e.Send(addr, auth) },
		logger: logger,
	}
}

// Message returns the e-mail of a forecast: the markdown report as text, and its HTML rendition.
func (m *Mailer) Message(to []string, f *cashflow.Forecast) (*email.Email, error) {
	report := renderer.ForecastMarkdown(f)
	var html bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(report), &html); err != nil {
		return nil, fmt.Errorf("failed to convert forecast to HTML: %w", err)
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject(f)
	e.Text = []byte(report)
	e.HTML = html.Bytes()
	return e, nil
}

// SendForecast sends forecast 'f' to the recipients 'to'.
func (m *Mailer) SendForecast(to []string, f *cashflow.Forecast) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipient")
	}
	e, err := m.Message(to, f)
	if err != nil {
		return err
	}
	if err := m.send(e); err != nil {
		m.logger.Errorf("Failed to send forecast to %v: %v", to, err)
		return fmt.Errorf("failed to send forecast: %w", err)
	}
	m.logger.Infof("Email sent to %v: %s", to, e.Subject)
	return nil
}

// subject summarizes the forecast in one line.
func subject(f *cashflow.Forecast) string {
	switch f.Outcome {
	case cashflow.OnTrack:
		return fmt.Sprintf("Forecast %s: %q is on track", f.Date, f.Goal.Name)
	case cashflow.Delayed:
		return fmt.Sprintf("Forecast %s: %q is %d months behind", f.Date, f.Goal.Name, f.Delay)
	case cashflow.Unreachable:
		return fmt.Sprintf("Forecast %s: %q is out of reach", f.Date, f.Goal.Name)
	default:
		return fmt.Sprintf("Forecast %s: %s in %d months", f.Date, lastBalance(f).Whole(), f.Periods)
	}
}

func lastBalance(f *cashflow.Forecast) cashflow.Money {
	if len(f.Projection) == 0 {
		return f.CurrentAssets
	}
	return f.Projection[len(f.Projection)-1]
}
