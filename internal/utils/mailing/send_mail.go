package mailing

import (
	"strconv"

	"bloodbank/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Mailer delivers a single html mail.
type Mailer interface {
	SendMail(toEmail string, subject string, body string) error
}

type smtpMailer struct {
	config MailConfig
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func BuildMessage(config MailConfig, toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if config.SMTPSender != "" {
		mailer.SetAddressHeader("From", config.SMTPEmail, config.SMTPSender)
	} else {
		mailer.SetHeader("From", config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	// Bodies carry user supplied text such as rejection reasons.
	mailer.SetBody("text/plain", body)
	return mailer
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(BuildMessage(m.config, toEmail, subject, body))
}
