package storage

import (
	"context"
	"kinoteka/proj/internal/domain/models"
)

// CatalogQueries are the joined movie reads, available both on the pool and
// inside a transaction.
type CatalogQueries interface {
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	ListMovies(ctx context.Context, nameSubstring string) ([]models.Movie, error)
}

// CatalogTx is one atomic unit of work against the catalog tables. The
// movie service opens it, performs every cross-entity step through it and
// commits; a rollback discards all of them. Rollback after Commit is a no-op.
type CatalogTx interface {
	CatalogQueries

	DirectorExists(ctx context.Context, id int64) (bool, error)
	// FindOrCreateGenre resolves a genre by its unique name, inserting it
	// first if missing. Safe under concurrent callers racing on the same
	// new name: both observe the same row.
	FindOrCreateGenre(ctx context.Context, name string) (*models.Genre, error)

	InsertDetail(ctx context.Context, detail string) (*models.MovieDetail, error)
	UpdateDetail(ctx context.Context, id int64, detail string) error
	DeleteDetail(ctx context.Context, id int64) error

	InsertMovie(ctx context.Context, name string, characters []string, directorID int64, detailID *int64) (*models.Movie, error)
	UpdateMovie(ctx context.Context, movie *models.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
	ReplaceMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
