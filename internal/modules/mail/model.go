package mail

import (
	"time"

	"github.com/google/uuid"
)

// SendHistory records one successfully delivered mail.
type SendHistory struct {
	ID        uuid.UUID `json:"id"`
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
