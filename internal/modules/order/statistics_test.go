package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/mail"
)

func TestSendOrderStatisticsMail(t *testing.T) {
	repo := newMockRepository()
	mailSvc := &mockMailService{sent: true}
	svc := NewStatisticsService(repo, mailSvc, "no-reply@cafekiosk.local")

	// Only the orders registered on 2024-08-06 count: the day-before
	// 23:59:59 and the day-after 00:00 fall outside [00:00, next 00:00).
	addPaymentCompletedOrder(repo, 6000, time.Date(2024, 8, 5, 23, 59, 59, 0, time.UTC))
	addPaymentCompletedOrder(repo, 6000, time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC))
	addPaymentCompletedOrder(repo, 6000, time.Date(2024, 8, 6, 23, 59, 59, 0, time.UTC))
	addPaymentCompletedOrder(repo, 6000, time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC))

	sent, err := svc.SendOrderStatisticsMail(context.Background(),
		time.Date(2024, 8, 6, 15, 42, 0, 0, time.UTC), "boss@cafekiosk.local")

	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, mailSvc.calls, 1)
	assert.Equal(t, "no-reply@cafekiosk.local", mailSvc.calls[0].from)
	assert.Equal(t, "boss@cafekiosk.local", mailSvc.calls[0].to)
	assert.Contains(t, mailSvc.calls[0].content, "Total revenue for 2024-08-06 is 12000.")
}

func TestSendOrderStatisticsMailIgnoresOtherStatuses(t *testing.T) {
	repo := newMockRepository()
	mailSvc := &mockMailService{sent: true}
	svc := NewStatisticsService(repo, mailSvc, "no-reply@cafekiosk.local")

	registeredAt := time.Date(2024, 8, 6, 12, 0, 0, 0, time.UTC)
	addPaymentCompletedOrder(repo, 4000, registeredAt)
	addOrderWithStatus(repo, StatusInit, 999, registeredAt)
	addOrderWithStatus(repo, StatusCanceled, 999, registeredAt)

	_, err := svc.SendOrderStatisticsMail(context.Background(), registeredAt, "boss@cafekiosk.local")

	require.NoError(t, err)
	require.Len(t, mailSvc.calls, 1)
	assert.Contains(t, mailSvc.calls[0].content, "is 4000.")
}

func addPaymentCompletedOrder(repo *mockRepository, totalPrice int, registeredAt time.Time) {
	addOrderWithStatus(repo, StatusPaymentCompleted, totalPrice, registeredAt)
}

func addOrderWithStatus(repo *mockRepository, status OrderStatus, totalPrice int, registeredAt time.Time) {
	id := uuid.New()
	repo.orders[id.String()] = &Order{
		ID:           id,
		Status:       status,
		TotalPrice:   totalPrice,
		RegisteredAt: registeredAt,
	}
}

var _ mail.Service = &mockMailService{}

type mailCall struct {
	from, to, subject, content string
}

type mockMailService struct {
	sent  bool
	calls []mailCall
}

func (m *mockMailService) SendMail(ctx context.Context, from, to, subject, content string) (bool, error) {
	m.calls = append(m.calls, mailCall{from, to, subject, content})
	return m.sent, nil
}
