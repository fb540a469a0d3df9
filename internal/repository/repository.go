package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Page bounds a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	return q
}

// IsUniqueViolation reports whether err is a duplicate-key error from any
// supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// ownedBy restricts a query on a project-owned table to rows whose project
// belongs to userID.
func ownedBy(q *gorm.DB, table, projectColumn string, userID uuid.UUID) *gorm.DB {
	return q.Joins("JOIN projects ON projects.id = "+table+"."+projectColumn).
		Where("projects.user_id = ?", userID)
}
