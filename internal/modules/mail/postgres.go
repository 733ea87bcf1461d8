package mail

import (
	"context"
	"database/sql"
)

type postgresHistoryRepo struct{ db *sql.DB }

func NewPostgresHistoryRepository(db *sql.DB) HistoryRepository {
	return &postgresHistoryRepo{db: db}
}

func (r *postgresHistoryRepo) Save(ctx context.Context, h *SendHistory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mail_send_histories (id, from_email, to_email, subject, content)
		VALUES ($1,$2,$3,$4,$5)`,
		h.ID, h.FromEmail, h.ToEmail, h.Subject, h.Content)
	return err
}
