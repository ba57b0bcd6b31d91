package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// LogMailer only logs; used in development when no mail server is around.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(l *slog.Logger) *LogMailer {
	if l == nil {
		l = slog.Default()
	}
	return &LogMailer{log: l}
}

func (m *LogMailer) Send(ctx context.Context, e Email) error {
	if err := e.validate(); err != nil {
		return err
	}
	m.log.LogAttrs(ctx, slog.LevelInfo, "mail",
		slog.String("to", strings.Join(e.AllRecipients(), ",")),
		slog.String("subject", e.Subject),
		slog.Int("text_bytes", len(e.TextBody)),
		slog.Int("html_bytes", len(e.HTMLBody)),
	)
	return nil
}
