package mailer

import (
	"context"
	"net"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
)

type smtpCapture struct {
	from  string
	rcpts []string
	data  string
}

// fakeSMTP accepts a single session and records the envelope and body.
func fakeSMTP(t *testing.T, ehlo []string) (string, <-chan smtpCapture) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan smtpCapture, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		var got smtpCapture

		_ = tp.PrintfLine("220 fake ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
			switch verb {
			case "EHLO":
				lines := append([]string{"fake"}, ehlo...)
				for i, l := range lines {
					sep := "-"
					if i == len(lines)-1 {
						sep = " "
					}
					_ = tp.PrintfLine("250%s%s", sep, l)
				}
			case "MAIL":
				got.from = strings.Trim(strings.TrimPrefix(line, "MAIL FROM:"), "<>")
				_ = tp.PrintfLine("250 ok")
			case "RCPT":
				got.rcpts = append(got.rcpts, strings.Trim(strings.TrimPrefix(line, "RCPT TO:"), "<>"))
				_ = tp.PrintfLine("250 ok")
			case "DATA":
				_ = tp.PrintfLine("354 go ahead")
				b, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				got.data = string(b)
				_ = tp.PrintfLine("250 queued")
			case "QUIT":
				_ = tp.PrintfLine("221 bye")
				out <- got
				return
			default:
				_ = tp.PrintfLine("502 unsupported")
			}
		}
	}()
	return ln.Addr().String(), out
}

func testSMTPMailer(t *testing.T, addr, tlsMode string) *SMTPMailer {
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	return NewSMTPMailer(config.SMTPConfig{Host: host, Port: port, TLSMode: tlsMode})
}

func TestSMTPMailer_Send(t *testing.T) {
	addr, got := fakeSMTP(t, []string{"PIPELINING"})
	m := testSMTPMailer(t, addr, "none")

	err := m.Send(context.Background(), Email{
		From:     "orders@saltandscoville.test",
		To:       []string{"ana@example.com"},
		Bcc:      []string{"audit@saltandscoville.test"},
		Subject:  "Order shipped",
		TextBody: "On its way.",
	})
	require.NoError(t, err)

	c := <-got
	assert.Equal(t, "orders@saltandscoville.test", c.from)
	assert.Equal(t, []string{"ana@example.com", "audit@saltandscoville.test"}, c.rcpts)
	assert.Contains(t, c.data, "Subject: Order shipped")
	assert.Contains(t, c.data, "On its way.")
	assert.NotContains(t, c.data, "audit@")
}

func TestSMTPMailer_StartTLSRequired(t *testing.T) {
	addr, _ := fakeSMTP(t, nil)
	m := testSMTPMailer(t, addr, "starttls")

	err := m.Send(context.Background(), Email{
		From: "a@b.c", To: []string{"d@e.f"}, Subject: "s", TextBody: "b",
	})
	assert.ErrorIs(t, err, errNoStartTLS)
}

func TestSMTPMailer_InvalidEmailNeverDials(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "mail.invalid", Port: "25"})
	m.dial = func(context.Context, string, string) (net.Conn, error) {
		t.Fatal("dialed for an invalid email")
		return nil, nil
	}
	err := m.Send(context.Background(), Email{From: "a@b.c", Subject: "s", TextBody: "b"})
	assert.ErrorIs(t, err, errNoRecipient)
}

