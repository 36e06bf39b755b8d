package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/weatherstation/api-server/internal/database"
	"github.com/weatherstation/api-server/internal/errors"
)

type PostgresBaseRepo struct {
	db database.DB
}

func (r *PostgresBaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *PostgresBaseRepo) Ping(ctx context.Context) error {
	if err := r.db.GetDB().PingContext(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}

// execContext runs the statement inside tx when one is given
func (r *PostgresBaseRepo) execContext(ctx context.Context, tx database.Transaction, query string, args ...interface{}) (sql.Result, error) {
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.GetDB().ExecContext(ctx, query, args...)
}

func (r *PostgresBaseRepo) queryxContext(ctx context.Context, tx database.Transaction, query string, args ...interface{}) (*sqlx.Rows, error) {
	if tx != nil {
		return tx.QueryxContext(ctx, query, args...)
	}
	return r.db.GetDB().QueryxContext(ctx, query, args...)
}

// rowsAffected returns the affected row count of a DML statement
func rowsAffected(result sql.Result) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return rows, nil
}

// constraintDetails is attached to database errors raised by the server
type constraintDetails struct {
	Code       string `json:"code"`
	Constraint string `json:"constraint,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// newDatabaseError wraps err as a data-access error, attaching SQLSTATE
// information from either driver.
func newDatabaseError(msg string, err error) *errors.APIError {
	apiErr := errors.NewDatabaseError(msg, err)

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return apiErr.WithDetails(constraintDetails{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Detail:     pqErr.Detail,
		})
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return apiErr.WithDetails(constraintDetails{
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
		})
	}

	return apiErr
}

// notFoundOr maps sql.ErrNoRows to a NotFound error and everything else to
// a data-access error.
func notFoundOr(entity string, op string, err error) *errors.APIError {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entity+" not found", err)
	}
	return newDatabaseError("failed to "+op+" "+entity, err)
}
