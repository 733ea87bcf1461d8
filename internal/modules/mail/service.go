package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service sends mails and records every delivered one in the history store.
type Service interface {
	SendMail(ctx context.Context, from, to, subject, content string) (bool, error)
}

type service struct {
	client  SendClient
	history HistoryRepository
}

// NewService creates a new mail service.
func NewService(client SendClient, history HistoryRepository) Service {
	return &service{client: client, history: history}
}

func (s *service) SendMail(ctx context.Context, from, to, subject, content string) (bool, error) {
	sent, err := s.client.SendEmail(ctx, from, to, subject, content)
	if err != nil {
		return false, fmt.Errorf("send mail: %w", err)
	}
	if !sent {
		return false, nil
	}

	h := &SendHistory{
		ID:        uuid.New(),
		FromEmail: from,
		ToEmail:   to,
		Subject:   subject,
		Content:   content,
	}
	if err := s.history.Save(ctx, h); err != nil {
		return false, fmt.Errorf("record send history: %w", err)
	}
	return true, nil
}
