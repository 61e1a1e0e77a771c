package models

import (
	"context"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DirectorModel struct {
	DB *pgxpool.Pool
}

const directorColumns = "id, name, date_of_birth, nationality, created_at, updated_at, deleted_at, version"

func (m *DirectorModel) Insert(ctx context.Context, name string, dateOfBirth time.Time, nationality string) (*models.Director, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO directors (name, date_of_birth, nationality) VALUES ($1, $2, $3) RETURNING "+directorColumns,
		name,
		dateOfBirth,
		nationality,
	)
	director, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &director, nil
}

func (m *DirectorModel) Get(ctx context.Context, id int64) (*models.Director, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT "+directorColumns+" FROM directors WHERE id = $1 AND deleted_at IS NULL",
		id,
	)
	director, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &director, nil
}

func (m *DirectorModel) List(ctx context.Context) ([]models.Director, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+directorColumns+" FROM directors WHERE deleted_at IS NULL ORDER BY id")
	directors, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgError(err)
	}
	return directors, nil
}

func (m *DirectorModel) Update(ctx context.Context, director *models.Director) (*models.Director, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE directors SET version = version + 1, updated_at = now(), name = $1, date_of_birth = $2, nationality = $3
		WHERE id = $4 AND version = $5 RETURNING `+directorColumns,
		director.Name,
		director.DateOfBirth,
		director.Nationality,
		director.ID,
		director.Version,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &updated, nil
}

// Delete fails with storage.ErrConflict while movies still reference the
// director (the FK is declared RESTRICT).
func (m *DirectorModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM directors WHERE id = $1", id)
	if err != nil {
		return mapPgError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
