package mail

import (
	"context"
	"fmt"

	"github.com/straye-as/facility-api/internal/config"
	"go.uber.org/zap"
)

// Mailer sends a templated message to one recipient
type Mailer interface {
	Send(ctx context.Context, templateID, recipient string, data map[string]string) error
}

// NewMailer returns an SMTP mailer when mail is enabled, otherwise a mailer
// that only logs what it would have sent
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	if !cfg.Enabled {
		logger.Info("Outbound mail disabled, notifications will be logged only")
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}

// LogMailer renders messages and logs them instead of sending
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send renders the template and logs the result
func (m *LogMailer) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	msg, err := Render(templateID, data)
	if err != nil {
		return err
	}
	m.logger.Info("mail not sent (mail disabled)",
		zap.String("template", templateID),
		zap.String("recipient", recipient),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// ErrUnknownTemplate is returned for a template id with no registered renderer
type ErrUnknownTemplate struct {
	ID string
}

func (e ErrUnknownTemplate) Error() string {
	return fmt.Sprintf("unknown mail template: %s", e.ID)
}
