package email

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/mailer"
)

// Sender renders the shop's transactional messages and hands them to the
// configured mailer.
type Sender struct {
	mail     mailer.Service
	from     string
	fromName string
	log      *slog.Logger
}

func NewSender(m mailer.Service, from, fromName string, l *slog.Logger) *Sender {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sender{mail: m, from: from, fromName: fromName, log: l}
}

type OrderLine struct {
	Name      string
	Qty       int
	LineTotal string
}

type OrderMail struct {
	Number   string
	Lines    []OrderLine
	Subtotal string
	Discount string // empty when no discount applied
	Shipping string
	Total    string
	Points   int
}

func (s *Sender) Welcome(ctx context.Context, to, name string) error {
	data := map[string]any{"Name": greetingName(name)}
	return s.send(ctx, to, "Welcome to Salt & Scoville", welcomeText, welcomeHTML, data)
}

func (s *Sender) OrderConfirmation(ctx context.Context, to, name string, o OrderMail) error {
	data := map[string]any{"Name": greetingName(name), "Order": o}
	return s.send(ctx, to, "Order confirmed: "+o.Number, orderText, orderHTML, data)
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func (s *Sender) send(ctx context.Context, to, subject string, text, html executor, data any) error {
	var tb, hb bytes.Buffer
	if err := text.Execute(&tb, data); err != nil {
		return err
	}
	if err := html.Execute(&hb, data); err != nil {
		return err
	}
	err := s.mail.Send(ctx, mailer.Email{
		From:     s.from,
		FromName: s.fromName,
		To:       []string{to},
		Subject:  subject,
		TextBody: tb.String(),
		HTMLBody: hb.String(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "email send failed", "subject", subject, "err", err)
	}
	return err
}

func greetingName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return "there"
}
