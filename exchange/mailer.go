// Copyright 2025 winterops. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	ttemplate "text/template"

	"github.com/wneessen/go-mail"
)

// SMTPConfig carries the mail transport settings, normally sourced from the
// environment by the CLI.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT,default=465"`
	Username string `env:"SMTP_USERNAME,required=true"`
	Password string `env:"SMTP_PASSWORD,required=true"`
	From     string `env:"SMTP_FROM"`
	Subject  string `env:"MAIL_SUBJECT,default=❄ Secret Snowflake Match ❄"`
}

const textBody = `Happy Holidays {{.Giver.Name}}!

We wish you a wonderful holiday season and a happy New Year!
Without further ado, please see your secret snowflake match below.

Your match is: {{.Receiver.Name}}
Their email is: {{.Receiver.Email}}
Their mailing address is: {{.Receiver.Address}}
Their gift ideas: {{.Receiver.GiftIdeas}}
`

const htmlBody = `<html>
  <body>
    <h2 style="color:DodgerBlue;"><i>Happy Holidays {{.Giver.Name}}!</i></h2>
    <p><i>We hope you have a wonderful holiday season!<br>
    Without further ado, please see your secret snowflake match below.</i></p>

    <p>
    <i>Your match: {{.Receiver.Name}}</i><br>
    <i>Their email: {{.Receiver.Email}}</i><br>
    <i>Their mailing address: {{.Receiver.Address}}</i><br>
    <i>Their gift ideas: {{.Receiver.GiftIdeas}}</i><br>
    </p>
  </body>
</html>
`

var (
	textTmpl = ttemplate.Must(ttemplate.New("text").Parse(textBody))
	htmlTmpl = template.Must(template.New("html").Parse(htmlBody))
)

// Mailer tells each giver who they drew. Receivers are never contacted.
type Mailer struct {
	cfg SMTPConfig
	log *slog.Logger
}

func NewMailer(cfg SMTPConfig, log *slog.Logger) *Mailer {
	if cfg.Host == "" {
		cfg.Host = DefaultSMTPHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultSMTPPort
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{cfg: cfg, log: log}
}

// Notify emails one giver their match, with text and HTML alternative
// bodies.
func (m *Mailer) Notify(p Pairing) error {
	msg, err := m.compose(p)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send to %s: %w", p.Giver.Email, err)
	}
	return nil
}

func (m *Mailer) compose(p Pairing) (*mail.Msg, error) {
	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, p); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}
	if err := htmlTmpl.Execute(&html, p); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(p.Giver.Email); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(m.cfg.Subject)
	msg.SetBodyString(mail.TypeTextPlain, text.String())
	msg.AddAlternativeString(mail.TypeTextHTML, html.String())

	return msg, nil
}

// NotifyAll sends every notification, carrying on past individual failures.
// It returns the giver addresses that were notified and those that were not.
func (m *Mailer) NotifyAll(pairings []Pairing) (sent, failed []string) {
	for _, p := range pairings {
		if err := m.Notify(p); err != nil {
			m.log.Error("notification failed", "giver", p.Giver.Email, "err", err)
			failed = append(failed, p.Giver.Email)
			continue
		}
		m.log.Info("notification sent", "giver", p.Giver.Email)
		sent = append(sent, p.Giver.Email)
	}
	return sent, failed
}
