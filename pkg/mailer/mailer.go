package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

// Mailer sends transactional HTML email over SMTP. Every send is best-effort:
// callers log failures and never propagate them into the primary operation.
type Mailer interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
}

type smtpMailer struct {
	cfg  config.MailConfig
	logg *logger.Logger
}

// New builds an SMTP mailer. When mail is not configured the returned mailer
// logs and drops every message so the worker keeps running in dev.
func New(cfg config.MailConfig, logg *logger.Logger) Mailer {
	if !cfg.Enabled() {
		return &noopMailer{logg: logg}
	}
	return &smtpMailer{cfg: cfg, logg: logg}
}

func (m *smtpMailer) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	headers := map[string]string{
		"From":         m.cfg.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/html; charset="UTF-8"`,
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, headers[k])
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "recipient", to), "email sent")
	}
	return nil
}

type noopMailer struct {
	logg *logger.Logger
}

func (m *noopMailer) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{"recipient": to, "subject": subject})
		m.logg.Warn(ctx, "mail not configured, dropping email")
	}
	return nil
}
