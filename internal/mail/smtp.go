package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/straye-as/facility-api/internal/config"
	"go.uber.org/zap"
)

// transport delivers a composed message
type transport func(ctx context.Context, from string, to []string, msg []byte) error

// SMTPMailer composes RFC 5322 messages and delivers them over SMTP
type SMTPMailer struct {
	cfg     *config.MailConfig
	logger  *zap.Logger
	deliver transport
	now     func() time.Time
}

// NewSMTPMailer creates an SMTP mailer from configuration
func NewSMTPMailer(cfg *config.MailConfig, logger *zap.Logger) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg, logger: logger, now: time.Now}
	m.deliver = m.sendSMTP
	return m
}

// Send renders templateID with data and delivers it to recipient
func (m *SMTPMailer) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	rendered, err := Render(templateID, data)
	if err != nil {
		return err
	}

	msg, err := m.compose(recipient, rendered)
	if err != nil {
		return err
	}

	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.TimeoutDuration())
		defer cancel()
	}

	if err := m.deliver(ctx, m.cfg.FromAddress, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send %s mail: %w", templateID, err)
	}

	m.logger.Info("mail sent",
		zap.String("template", templateID),
		zap.String("recipient", recipient),
	)
	return nil
}

func (m *SMTPMailer) compose(recipient string, r *Rendered) ([]byte, error) {
	var h mail.Header
	h.SetDate(m.now())
	h.SetAddressList("From", []*mail.Address{{Name: m.cfg.FromName, Address: m.cfg.FromAddress}})
	h.SetAddressList("To", []*mail.Address{{Address: recipient}})
	if r.ReplyTo != "" {
		h.SetAddressList("Reply-To", []*mail.Address{{Name: r.ReplyToName, Address: r.ReplyTo}})
	}
	h.SetSubject(r.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := io.WriteString(w, r.Body); err != nil {
		return nil, fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish message: %w", err)
	}
	return buf.Bytes(), nil
}

// sendSMTP submits msg to the configured relay, upgrading to TLS when the
// server offers STARTTLS and authenticating with PLAIN when a username is set.
func (m *SMTPMailer) sendSMTP(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := c.SendMail(from, to, bytes.NewReader(msg)); err != nil {
		return err
	}
	return c.Quit()
}
