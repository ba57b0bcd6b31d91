package mailer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"slices"
	"strings"
	"time"
)

// buildMIMEMessage renders e as an RFC 5322 message. Bodies are
// quoted-printable so long HTML lines survive relays that enforce the
// 998 octet limit. Bcc never appears in the headers.
func buildMIMEMessage(e Email, msgIDDomain string) (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }

	from := mail.Address{Name: e.FromName, Address: e.From}
	header("Date", time.Now().Format(time.RFC1123Z))
	header("Message-ID", messageID(msgIDDomain))
	header("From", from.String())
	header("To", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		header("Cc", strings.Join(e.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header("MIME-Version", "1.0")

	for _, k := range slices.Sorted(maps.Keys(e.Headers)) {
		if v := e.Headers[k]; k != "" && v != "" && !strings.ContainsAny(k+v, "\r\n") {
			header(textproto.CanonicalMIMEHeaderKey(k), v)
		}
	}

	switch {
	case e.TextBody != "" && e.HTMLBody != "":
		mw := multipart.NewWriter(&buf)
		header("Content-Type", mime.FormatMediaType("multipart/alternative", map[string]string{"boundary": mw.Boundary()}))
		buf.WriteString("\r\n")
		for _, p := range []struct{ ct, body string }{{"text/plain", e.TextBody}, {"text/html", e.HTMLBody}} {
			w, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":              {p.ct + "; charset=UTF-8"},
				"Content-Transfer-Encoding": {"quoted-printable"},
			})
			if err != nil {
				return "", err
			}
			if err := writeQP(w, p.body); err != nil {
				return "", err
			}
		}
		if err := mw.Close(); err != nil {
			return "", err
		}
	case e.HTMLBody != "":
		if err := writeSinglePart(&buf, "text/html", e.HTMLBody); err != nil {
			return "", err
		}
	default:
		if err := writeSinglePart(&buf, "text/plain", e.TextBody); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func writeSinglePart(buf *bytes.Buffer, contentType, body string) error {
	buf.WriteString("Content-Type: " + contentType + "; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	return writeQP(buf, body)
}

func writeQP(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	if err := qp.Close(); err != nil {
		return err
	}
	if !strings.HasSuffix(body, "\n") {
		_, err := w.Write([]byte("\r\n"))
		return err
	}
	return nil
}

func messageID(domain string) string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return fmt.Sprintf("<%s@%s>", hex.EncodeToString(b), domain)
}
