package mail

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"rps-backend/config"
)

const dialTimeout = 30 * time.Second

// Client sends outbound mail over SMTP with STARTTLS. Failures are reported
// to the caller; whether they fail the request is the caller's decision.
type Client struct {
	cfg config.Mail
}

func NewClient(cfg config.Mail) *Client { return &Client{cfg: cfg} }

// SendVerification delivers the verification link as a plain-text body with
// an HTML alternative.
func (c *Client) SendVerification(recipient, verificationURL string) error {
	subject := "Verify your email"
	text := fmt.Sprintf(
		"Thanks for making an account for https://rps9.net !\r\n\r\n"+
			"Please verify your email by opening this link:\r\n%s\r\n\r\n"+
			"If you didn't make an account, please ignore this email.",
		verificationURL)
	html := verificationHTML(subject, verificationURL)
	msg := c.buildMessage(recipient, subject, text, html)
	return c.send(recipient, msg)
}

func (c *Client) buildMessage(recipient, subject, text, html string) []byte {
	const boundary = "rps-alt-boundary"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", c.cfg.SenderName, c.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, html)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func (c *Client) send(recipient string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))
	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()
	if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", c.cfg.Sender, c.cfg.Password, c.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(c.cfg.Sender); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func verificationHTML(subject, verificationURL string) string {
	const (
		bg        = "#111827"
		card      = "#1F2937"
		text      = "#E5E7EB"
		secondary = "#9CA3AF"
		accent    = "#3B82F6"
	)
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8"/>
<title>%s</title>
</head>
<body style="margin:0;padding:0;background:%s;">
<table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="background:%s;padding:24px 12px;">
<tr><td align="center">
<table role="presentation" cellpadding="0" cellspacing="0" width="600" style="max-width:600px;width:100%%;background:%s;border-radius:14px;">
<tr><td style="padding:28px;">
<h1 style="margin:0 0 12px 0;color:%s;font-size:24px;font-weight:800;">Verify your email</h1>
<p style="margin:0 0 12px 0;color:%s;font-size:16px;">Thanks for making an account for https://rps9.net !</p>
<p style="margin:0 0 12px 0;color:%s;font-size:16px;">Please confirm your email by clicking the button below.</p>
<div style="margin-top:20px;">
<a href="%s" style="display:inline-block;padding:12px 20px;background:%s;color:#FFFFFF;text-decoration:none;border-radius:10px;font-weight:700;font-size:16px;">Verify email</a>
</div>
<p style="margin:24px 0 0 0;color:%s;font-size:13px;">If you didn't create an account, you can ignore this email.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`, subject, bg, bg, card, text, text, text, verificationURL, accent, secondary)
}
