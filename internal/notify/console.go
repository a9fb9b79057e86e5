package notify

import (
	"strings"

	"go.uber.org/zap"
)

type consoleMailer struct {
	logger *zap.Logger
	sync   bool
}

var _ Mailer = (*consoleMailer)(nil)

// NewConsoleMailer logs messages instead of sending them. Used when no SendGrid key is configured.
func NewConsoleMailer(logger *zap.Logger) Mailer {
	return &consoleMailer{logger: logger}
}

func (svc *consoleMailer) SendMessages(messages ...*Message) {
	for _, msg := range messages {
		if svc.sync {
			svc.sendMessage(msg)
			continue
		}
		go svc.sendMessage(msg)
	}
}

func (svc *consoleMailer) sendMessage(msg *Message) {
	if err := msg.Render(); err != nil {
		svc.logger.Error("Failed to render email", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return
	}

	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.String())
	}
	svc.logger.Info("Email (console)",
		zap.String("to", strings.Join(to, ", ")),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextContent),
	)
}
