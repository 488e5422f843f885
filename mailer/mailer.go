// Package mailer is the email-relay collaborator, a thin wrapper over SMTP.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"

	"unwind/globals"
)

type Mailer struct {
	Host string
	Port string
	From string
	Pass string
}

func NewFromEnv() *Mailer {
	return &Mailer{
		Host: globals.EnvOr("SMTP_HOST", "smtp.gmail.com"),
		Port: globals.EnvOr("SMTP_PORT", "587"),
		From: globals.EnvOr("SMTP_FROM", ""),
		Pass: globals.EnvOr("SMTP_PASS", ""),
	}
}

func (m *Mailer) auth() smtp.Auth {
	return smtp.PlainAuth("", m.From, m.Pass, m.Host)
}

func (m *Mailer) addr() string {
	return m.Host + ":" + m.Port
}

// Send delivers a plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(m.addr(), m.auth(), m.From, []string{to}, msg)
}

// SendWithAttachment delivers an HTML message carrying one binary attachment.
func (m *Mailer) SendWithAttachment(to, subject, htmlBody, filename string, attachment []byte) error {
	const boundary = "unwind-mixed-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n", htmlBody)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: application/pdf\r\n")
	fmt.Fprintf(&buf, "Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded + "\r\n")
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return smtp.SendMail(m.addr(), m.auth(), m.From, []string{to}, buf.Bytes())
}
