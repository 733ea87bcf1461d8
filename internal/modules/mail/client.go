package mail

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// SendClient delivers a single mail. Implementations talk to the real mail
// infrastructure; tests stub it.
type SendClient interface {
	SendEmail(ctx context.Context, from, to, subject, content string) (bool, error)
}

// logClient writes mails to the application log instead of delivering them.
// Stand-in until an SMTP relay is provisioned.
type logClient struct{}

func NewLogClient() SendClient { return &logClient{} }

func (c *logClient) SendEmail(ctx context.Context, from, to, subject, content string) (bool, error) {
	log.WithFields(log.Fields{
		"from":    from,
		"to":      to,
		"subject": subject,
	}).Info("mail delivered to log")
	return true, nil
}
