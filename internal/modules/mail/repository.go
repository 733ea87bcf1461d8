package mail

import "context"

// HistoryRepository defines storage for mail send histories.
type HistoryRepository interface {
	Save(ctx context.Context, h *SendHistory) error
}
