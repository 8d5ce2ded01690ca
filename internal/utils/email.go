package utils

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/wneessen/go-mail"

	"scanpay_back_end/internal/config"
)

// Mailer sends e-mails through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Enabled()
}

// BuildMessage assembles the message without sending it.
func (m *Mailer) BuildMessage(to, subject, htmlBody, attachmentName string, attachment []byte) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	if attachment != nil {
		if err := msg.AttachReader(attachmentName, bytes.NewReader(attachment)); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody, attachmentName string, attachment []byte) error {
	msg, err := m.BuildMessage(to, subject, htmlBody, attachmentName, attachment)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(15 * time.Second),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}

	log.Println("📤 Sending e-mail to", to)
	return client.DialAndSendWithContext(ctx, msg)
}
