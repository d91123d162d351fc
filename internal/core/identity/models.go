package identity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Roles        []string  `json:"roles"`
	IsAdmin      bool      `json:"is_admin"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the caller identity threaded through the query and analytics
// entry points. The access decider turns it into an opaque filter fragment;
// nothing downstream inspects it further.
type Identity struct {
	UserID  uuid.UUID `json:"user_id"`
	Roles   []string  `json:"roles"`
	IsAdmin bool      `json:"is_admin"`
}

// Owner is the display projection returned by the batched owner lookup.
type Owner struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// Request/Response types
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
