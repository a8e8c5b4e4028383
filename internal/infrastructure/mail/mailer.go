// Package mail sends platform email over SMTP.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Address  string
	Password string
	Alias    string
	// CleanHost is the apex host used to build recovery links.
	CleanHost string
}

type Mailer struct {
	dialer *gomail.Dialer
	cfg    Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Address, cfg.Password),
		cfg:    cfg,
	}
}

// SendRecovery mails a password-recovery link. The link expires with the
// token, one hour after issue.
func (m *Mailer) SendRecovery(ctx context.Context, email, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Alias)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "PoyoBook - Password Recovery")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi!\nYou recently requested a password recovery on %s.\n"+
			"Follow this link to set a new password:\n"+
			"https://%s/auth/recover/%s\n\n"+
			"The link expires in one hour.\n",
		m.cfg.CleanHost, m.cfg.CleanHost, token))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send recovery mail: %w", err)
	}
	return nil
}
