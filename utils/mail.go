package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"sync"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/templates"
	"github.com/shopspring/decimal"
)

type MailConfig struct {
	SMTPAddress string
	SMTPHost    string
	From        string
	Password    string
}

type Field struct {
	Label string
	Value string
}

type EmailData struct {
	Name            string
	Message         string
	VerificationURL string
	LogoURL         string
	Order           *models.Order
	Fields          []Field
}

// Deliver hands a rendered message to the SMTP server. Tests replace it.
var Deliver = smtp.SendMail

var (
	mailMu  sync.RWMutex
	mailCfg MailConfig
)

func ConfigureMail(cfg MailConfig) {
	mailMu.Lock()
	mailCfg = cfg
	mailMu.Unlock()
}

func mailConfig() MailConfig {
	mailMu.RLock()
	defer mailMu.RUnlock()
	return mailCfg
}

var parsed = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": func(v decimal.Decimal) string { return "₹" + v.StringFixed(2) },
}).ParseFS(templates.FS, "*.html"))

// SendEmail renders the named template from the templates package and mails it.
func SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	var body bytes.Buffer
	if err := parsed.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	cfg := mailConfig()
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		cfg.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	var auth smtp.Auth
	if cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPHost)
	}

	recipients := strings.Split(emailTo, ",")
	for i := range recipients {
		recipients[i] = strings.TrimSpace(recipients[i])
	}
	if err := Deliver(cfg.SMTPAddress, auth, cfg.From, recipients, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
