package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/cashflow/notify"
)

// Config is the configuration of the CLI, read from the environment.
type Config struct {
	Dir      string `env:"CASHFLOW_DIR"       envDefault:"."`
	Currency string `env:"CASHFLOW_CURRENCY"  envDefault:"JPY"`
	LogLevel string `env:"CASHFLOW_LOG_LEVEL" envDefault:"warning"`
	// Today overrides the reference day, for reproducible reports.
	Today string `env:"CASHFLOW_TODAY"`

	SMTPHost     string `env:"CASHFLOW_SMTP_HOST"`
	SMTPPort     int    `env:"CASHFLOW_SMTP_PORT"     envDefault:"587"`
	SMTPUser     string `env:"CASHFLOW_SMTP_USER"`
	SMTPPassword string `env:"CASHFLOW_SMTP_PASSWORD"`
	MailFrom     string `env:"CASHFLOW_MAIL_FROM"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SMTP returns the mail server settings.
func (c Config) SMTP() notify.SMTP {
	return notify.SMTP{Host: c.SMTPHost, Port: c.SMTPPort, User: c.SMTPUser, Password: c.SMTPPassword}
}

// CanMail tells whether forecasts can be sent by e-mail.
func (c Config) CanMail() bool { return c.SMTPHost != "" && c.MailFrom != "" }
