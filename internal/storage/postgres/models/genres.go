package models

import (
	"context"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreModel struct {
	DB *pgxpool.Pool
}

const genreColumns = "id, name, created_at, updated_at, deleted_at, version"

func (m *GenreModel) Insert(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO genres (name) VALUES ($1) RETURNING "+genreColumns,
		name,
	)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &genre, nil
}

func (m *GenreModel) Get(ctx context.Context, id int64) (*models.Genre, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT "+genreColumns+" FROM genres WHERE id = $1 AND deleted_at IS NULL",
		id,
	)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &genre, nil
}

func (m *GenreModel) List(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+genreColumns+" FROM genres WHERE deleted_at IS NULL ORDER BY name")
	genres, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgError(err)
	}
	return genres, nil
}

func (m *GenreModel) Update(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE genres SET version = version + 1, updated_at = now(), name = $1
		WHERE id = $2 AND version = $3 RETURNING `+genreColumns,
		genre.Name,
		genre.ID,
		genre.Version,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &updated, nil
}

func (m *GenreModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM genres WHERE id = $1", id)
	if err != nil {
		return mapPgError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
