package order

import (
	"context"
	"fmt"
	"time"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/mail"
)

// StatisticsService sends daily revenue summaries.
type StatisticsService interface {
	// SendOrderStatisticsMail sums the total price of payment-completed
	// orders registered on the given date and mails the summary to the
	// given address.
	SendOrderStatisticsMail(ctx context.Context, date time.Time, to string) (bool, error)
}

type statisticsService struct {
	repo Repository
	mail mail.Service
	from string
}

// NewStatisticsService creates a new order statistics service. from is the
// sender address on the summary mails.
func NewStatisticsService(repo Repository, mailService mail.Service, from string) StatisticsService {
	return &statisticsService{repo: repo, mail: mailService, from: from}
}

func (s *statisticsService) SendOrderStatisticsMail(ctx context.Context, date time.Time, to string) (bool, error) {
	// Day boundary is [00:00, next day 00:00) in the date's own location.
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	orders, err := s.repo.FindPaymentCompletedOrdersBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, fmt.Errorf("fetch payment-completed orders: %w", err)
	}

	total := 0
	for _, o := range orders {
		total += o.TotalPrice
	}

	dateText := day.Format("2006-01-02")
	subject := fmt.Sprintf("Revenue summary for %s", dateText)
	content := fmt.Sprintf("Total revenue for %s is %d.", dateText, total)

	sent, err := s.mail.SendMail(ctx, s.from, to, subject, content)
	if err != nil {
		return false, err
	}
	if !sent {
		return false, fmt.Errorf("statistics mail was not sent")
	}
	return true, nil
}
