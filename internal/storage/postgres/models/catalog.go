package models

import (
	"context"
	"errors"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogModel serves the joined movie reads directly from the pool and
// hands out transactions for the multi-entity writes.
type CatalogModel struct {
	catalogQueries
	DB *pgxpool.Pool
}

func NewCatalogModel(db *pgxpool.Pool) *CatalogModel {
	return &CatalogModel{catalogQueries: catalogQueries{db: db}, DB: db}
}

func (m *CatalogModel) Begin(ctx context.Context) (storage.CatalogTx, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &catalogTx{catalogQueries: catalogQueries{db: tx}, tx: tx}, nil
}

type catalogTx struct {
	catalogQueries
	tx pgx.Tx
}

func (t *catalogTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *catalogTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *catalogTx) DirectorExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := t.db.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM directors WHERE id = $1 AND deleted_at IS NULL)",
		id,
	).Scan(&exists)
	return exists, err
}

// FindOrCreateGenre upserts on the unique name so two transactions racing on
// the same new name both land on a single row.
func (t *catalogTx) FindOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := t.db.Query(
		ctx,
		`INSERT INTO genres (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = excluded.name
		RETURNING `+genreColumns,
		name,
	)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &genre, nil
}

func (t *catalogTx) InsertDetail(ctx context.Context, detail string) (*models.MovieDetail, error) {
	var d models.MovieDetail
	err := t.db.QueryRow(
		ctx,
		"INSERT INTO movie_details (detail) VALUES ($1) RETURNING id, detail",
		detail,
	).Scan(&d.ID, &d.Detail)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &d, nil
}

func (t *catalogTx) UpdateDetail(ctx context.Context, id int64, detail string) error {
	status, err := t.db.Exec(
		ctx,
		"UPDATE movie_details SET detail = $1, updated_at = now(), version = version + 1 WHERE id = $2",
		detail,
		id,
	)
	if err != nil {
		return mapPgError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *catalogTx) DeleteDetail(ctx context.Context, id int64) error {
	status, err := t.db.Exec(ctx, "DELETE FROM movie_details WHERE id = $1", id)
	if err != nil {
		return mapPgError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *catalogTx) InsertMovie(ctx context.Context, name string, characters []string, directorID int64, detailID *int64) (*models.Movie, error) {
	rows, _ := t.db.Query(
		ctx,
		`INSERT INTO movies (name, characters, director_id, detail_id) VALUES ($1, $2, $3, $4)
		RETURNING id, name, characters, director_id, detail_id, created_at, updated_at, deleted_at, version`,
		name,
		characters,
		directorID,
		detailID,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, mapPgError(err)
	}
	return &movie, nil
}

func (t *catalogTx) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	err := t.db.QueryRow(
		ctx,
		`UPDATE movies SET version = version + 1, updated_at = now(),
			name = $1, characters = $2, director_id = $3, detail_id = $4
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`,
		movie.Name,
		movie.Characters,
		movie.DirectorID,
		movie.DetailID,
		movie.ID,
		movie.Version,
	).Scan(&movie.UpdatedAt, &movie.Version)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (t *catalogTx) DeleteMovie(ctx context.Context, id int64) error {
	status, err := t.db.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return mapPgError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *catalogTx) ReplaceMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error {
	if _, err := t.db.Exec(ctx, "DELETE FROM movies_genres WHERE movie_id = $1", movieID); err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := t.db.Exec(
		ctx,
		"INSERT INTO movies_genres (movie_id, genre_id) SELECT $1, unnest($2::bigint[])",
		movieID,
		genreIDs,
	)
	return mapPgError(err)
}

// catalogQueries holds the reads shared by the pool-backed model and the
// transaction, so a mutation can return the joined projection it produced
// before committing.
type catalogQueries struct {
	db DBTX
}

const joinedMovieQuery = `
SELECT m.id, m.name, m.characters, m.director_id, m.detail_id,
	m.created_at, m.updated_at, m.deleted_at, m.version,
	d.name, d.date_of_birth, d.nationality, md.detail
FROM movies m
JOIN directors d ON d.id = m.director_id
LEFT JOIN movie_details md ON md.id = m.detail_id
WHERE m.deleted_at IS NULL`

func (q catalogQueries) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	rows, err := q.db.Query(ctx, joinedMovieQuery+" AND m.id = $1", id)
	if err != nil {
		return nil, err
	}
	movies, err := q.collectJoined(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, storage.ErrNotFound
	}
	return &movies[0], nil
}

// likeEscaper neutralizes LIKE metacharacters so a filter matches them
// literally instead of acting as a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (q catalogQueries) ListMovies(ctx context.Context, nameSubstring string) ([]models.Movie, error) {
	rows, err := q.db.Query(
		ctx,
		joinedMovieQuery+` AND (m.name ILIKE '%' || $1 || '%' ESCAPE '\' OR $1 = '') ORDER BY m.id`,
		likeEscaper.Replace(nameSubstring),
	)
	if err != nil {
		return nil, err
	}
	return q.collectJoined(ctx, rows)
}

func (q catalogQueries) collectJoined(ctx context.Context, rows pgx.Rows) ([]models.Movie, error) {
	defer rows.Close()
	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		var director models.Director
		var detail *string
		err := rows.Scan(
			&m.ID, &m.Name, &m.Characters, &m.DirectorID, &m.DetailID,
			&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt, &m.Version,
			&director.Name, &director.DateOfBirth, &director.Nationality, &detail,
		)
		if err != nil {
			return nil, err
		}
		director.ID = m.DirectorID
		m.Director = &director
		if m.DetailID != nil && detail != nil {
			m.Detail = &models.MovieDetail{ID: *m.DetailID, Detail: *detail}
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return q.attachGenres(ctx, movies)
}

func (q catalogQueries) attachGenres(ctx context.Context, movies []models.Movie) ([]models.Movie, error) {
	if len(movies) == 0 {
		return movies, nil
	}
	ids := make([]int64, 0, len(movies))
	byID := make(map[int64]*models.Movie, len(movies))
	for i := range movies {
		ids = append(ids, movies[i].ID)
		byID[movies[i].ID] = &movies[i]
	}
	rows, err := q.db.Query(
		ctx,
		`SELECT mg.movie_id, g.id, g.name, g.created_at, g.updated_at, g.deleted_at, g.version
		FROM movies_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1::bigint[])
		ORDER BY g.name`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID int64
		var g models.Genre
		if err := rows.Scan(&movieID, &g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt, &g.Version); err != nil {
			return nil, err
		}
		byID[movieID].Genres = append(byID[movieID].Genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}
