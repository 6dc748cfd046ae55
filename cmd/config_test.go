package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CASHFLOW_DIR", "/data")
	t.Setenv("CASHFLOW_CURRENCY", "EUR")
	t.Setenv("CASHFLOW_SMTP_HOST", "smtp.example.com")
	t.Setenv("CASHFLOW_MAIL_FROM", "cfs@example.com")
	t.Setenv("CASHFLOW_TODAY", "")
	t.Setenv("GEMINI_API_KEY", "")

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := Config{
		Dir:      "/data",
		Currency: "EUR",
		LogLevel: "warning",
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		MailFrom: "cfs@example.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
	if !got.CanMail() {
		t.Errorf("CanMail() = false, want true")
	}
	if s := got.SMTP(); s.Host != "smtp.example.com" || s.Port != 587 {
		t.Errorf("SMTP() = %+v", s)
	}
}

func TestLoadConfig_invalid(t *testing.T) {
	t.Setenv("CASHFLOW_SMTP_PORT", "twenty-five")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("LoadConfig() with an invalid port error = nil, want an error")
	}
}

func TestReferenceDay(t *testing.T) {
	setup(t)
	if d, err := referenceDay(); err != nil || d.String() != "2024-04-20" {
		t.Errorf("referenceDay() = %v, %v, want 2024-04-20", d, err)
	}
	config.Today = "tomorrow"
	if _, err := referenceDay(); err == nil {
		t.Errorf("referenceDay() with CASHFLOW_TODAY=tomorrow error = nil, want an error")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warning", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := NewLogger(&bytes.Buffer{}, tt.level).GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}

	var buf bytes.Buffer
	NewLogger(&buf, "info").WithField("dir", "data").Info("loaded")
	if got := buf.String(); !strings.Contains(got, "msg=loaded") || !strings.Contains(got, "dir=data") {
		t.Errorf("NewLogger() wrote %q", got)
	}
}

func TestSchedule(t *testing.T) {
	setup(t)
	if err := schedule(context.Background(), "every day", nil); err == nil {
		t.Errorf("schedule(every day) error = nil, want an error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var runs atomic.Int32
	err := schedule(ctx, "@every 1s", func(context.Context) error {
		if runs.Add(1) == 2 {
			cancel()
		}
		return errors.New("failures are logged")
	})
	if err != nil {
		t.Fatalf("schedule() error = %v", err)
	}
	if got := runs.Load(); got < 2 {
		t.Errorf("schedule() ran %d times, want at least 2", got)
	}
}
