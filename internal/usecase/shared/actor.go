package shared

import (
	"github.com/bruceg7333/water-shop-api/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a command or query.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsStaff()
}
