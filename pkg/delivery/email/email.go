// Package email delivers rendered reports as SMTP attachments.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Sender struct {
	cfg Config
	log *slog.Logger
}

func NewSender(cfg Config, log *slog.Logger) *Sender {
	return &Sender{cfg: cfg, log: log.With("component", "email")}
}

// Send mails the report at path to address, attached as filename.pdf.
func (s *Sender) Send(ctx context.Context, address, name, filename, path string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", s.cfg.From, err)
	}
	if err := msg.To(address); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", address, err)
	}
	msg.Subject("Seu relatório Pit Stop Golf")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Olá %s,\n\nSegue em anexo o relatório da inspeção de baterias do seu carrinho.\n\nPit Stop Golf", name))
	msg.AttachFile(path, mail.WithFileName(fmt.Sprintf("Relatorio_%s.pdf", filename)))

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	s.log.Info("Email delivered", "address", address)
	return nil
}
