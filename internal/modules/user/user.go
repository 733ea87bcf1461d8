package user

import (
	"time"

	"github.com/google/uuid"
)

// Role grants access to the administrative endpoints (catalog, stock,
// statistics). Baristas can read but not mutate.
const (
	RoleAdmin   = "ADMIN"
	RoleBarista = "BARISTA"
)

// User is a staff account at the cafe.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
