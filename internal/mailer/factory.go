package mailer

import (
	"fmt"
	"log/slog"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
)

func New(cfg *config.Config, l *slog.Logger) (Service, error) {
	switch cfg.Mail.Driver {
	case "smtp":
		return NewSMTPMailer(cfg.SMTP), nil
	case "mailtrap":
		return NewMailtrapMailer(cfg.Mailtrap), nil
	case "log", "":
		return NewLogMailer(l), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_DRIVER: %s", cfg.Mail.Driver)
	}
}
