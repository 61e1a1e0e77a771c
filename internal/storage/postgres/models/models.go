package models

import (
	"context"
	"errors"
	"kinoteka/proj/internal/storage"
	"kinoteka/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreign_key_violation
const fkViolationCode = "23503"

// DBTX is the querying surface shared by *pgxpool.Pool and pgx.Tx, so the
// same query code can run both inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Models struct {
	Users     *UserModel
	Directors *DirectorModel
	Genres    *GenreModel
	Catalog   *CatalogModel
}

func New(db *postgres.PostgresDB) *Models {
	return &Models{
		Users:     &UserModel{DB: db.Conn},
		Directors: &DirectorModel{DB: db.Conn},
		Genres:    &GenreModel{DB: db.Conn},
		Catalog:   NewCatalogModel(db.Conn),
	}
}

// mapPgError translates driver-level failures into the neutral storage
// sentinels the services switch on.
func mapPgError(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code == postgres.ErrConflictCode || pgxErr.Code == fkViolationCode {
			return storage.ErrConflict
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
