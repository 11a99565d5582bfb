package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailData struct {
	Name    string
	Message string
	LinkURL string
	LogoURL string
}

func RenderTemplate(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

type SMTPSender struct {
	From     string
	Password string
	Host     string
	Address  string
}

func (s SMTPSender) Configured() bool {
	return s.From != "" && s.Address != ""
}

func (s SMTPSender) Send(to, subject, htmlBody string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		s.From,
		to,
		subject,
		htmlBody,
	)

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	if err := smtp.SendMail(s.Address, auth, s.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
