package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
)

const (
	smtpDialTimeout = 5 * time.Second
	smtpSendTimeout = 20 * time.Second
)

var errNoStartTLS = errors.New("smtp: server does not offer STARTTLS")

// SMTPMailer delivers one message per connection. TLSMode is "none",
// "starttls" or "tls" (implicit TLS, usually port 465).
type SMTPMailer struct {
	cfg    config.SMTPConfig
	domain string
	dial   func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	domain := cfg.Host
	if domain == "" {
		domain = "localhost"
	}
	d := &net.Dialer{Timeout: smtpDialTimeout}
	return &SMTPMailer{cfg: cfg, domain: domain, dial: d.DialContext}
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	raw, err := buildMIMEMessage(e, m.domain)
	if err != nil {
		return err
	}

	c, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := deliver(c, e.From, e.AllRecipients(), raw); err != nil {
		return err
	}
	return c.Quit()
}

// open returns a client that is ready for MAIL FROM. The whole exchange
// shares one deadline taken from ctx or smtpSendTimeout.
func (m *SMTPMailer) open(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	conn, err := m.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(smtpSendTimeout)
	}
	_ = conn.SetDeadline(deadline)

	if m.cfg.TLSMode == "tls" {
		tc := tls.Client(conn, m.tlsConfig())
		if err := tc.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("smtp tls handshake: %w", err)
		}
		conn = tc
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp greeting: %w", err)
	}
	if err := c.Hello(m.domain); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("smtp hello: %w", err)
	}

	if m.cfg.TLSMode == "starttls" {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			_ = c.Close()
			return nil, errNoStartTLS
		}
		if err := c.StartTLS(m.tlsConfig()); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("smtp starttls: %w", err)
		}
	}

	// Mailpit and MailHog accept mail without AUTH.
	if m.cfg.User != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)); err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("smtp auth: %w", err)
			}
		}
	}
	return c, nil
}

func deliver(c *smtp.Client, from string, rcpts []string, raw string) error {
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, r := range rcpts {
		if err := c.Rcpt(r); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", r, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(raw)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data end: %w", err)
	}
	return nil
}

func (m *SMTPMailer) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         m.cfg.Host,
		InsecureSkipVerify: m.cfg.SkipVerifyTLS,
		MinVersion:         tls.VersionTLS12,
	}
}
