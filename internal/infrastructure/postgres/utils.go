package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/biztime-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a fallos del cliente.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
	codeNumericOutOfRange   = "22003"
	codeStringTooLong       = "22001"
)

// classify traduce un error de pgx a un *domain.Error.
// Las violaciones de constraint son fallos del cliente; cualquier error sin SQLSTATE se trata
// como caída del almacenamiento.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			return domain.Conflict(op, pgDetail(pgErr), err)
		case codeNotNullViolation, codeCheckViolation, codeInvalidTextRepr,
			codeNumericOutOfRange, codeStringTooLong:
			return &domain.Error{Kind: domain.KindBadRequest, Op: op, Message: pgDetail(pgErr), Err: err}
		default:
			return domain.Internal(op, err)
		}
	}
	return domain.Unavailable(op, err)
}

// pgDetail prefiere el detalle ("Key (code)=(x) already exists.") sobre el mensaje genérico.
func pgDetail(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	return pgErr.Message
}

// constraintCompaniesPKey nombre que PostgreSQL asigna a la PK de companies.
const constraintCompaniesPKey = "companies_pkey"

// uniqueConstraint devuelve el constraint violado en un 23505, o "" si err no es uno.
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
