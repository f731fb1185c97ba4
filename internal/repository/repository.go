// internal/repository/repository.go
package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// returningAll makes an insert or update scan the stored row back.
var returningAll = clause.Returning{}

// Postgres error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgErrorCode returns the SQLSTATE of err, or "" when err is not a
// postgres error.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgErrorCode(err) == pgCheckViolation
}

// whereVisible restricts q to rows visible from a scope: public rows plus,
// when orgID is set, the organization's own rows.
func whereVisible(q *gorm.DB, column string, orgID *uuid.UUID) *gorm.DB {
	if orgID == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where("("+column+" IS NULL OR "+column+" = ?)", *orgID)
}
