package model

import "github.com/google/uuid"

// Principal is the authenticated caller. Every owner-scoped operation
// receives it explicitly.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}
