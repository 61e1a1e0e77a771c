package movies

import (
	"context"
	"io"
	"kinoteka/proj/internal/domain/models"
	"kinoteka/proj/internal/storage"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB holds catalog state; fakeStorage snapshots it per transaction so a
// rollback really discards every buffered write.
type fakeDB struct {
	nextID      int64
	directors   map[int64]models.Director
	genres      map[int64]models.Genre
	details     map[int64]models.MovieDetail
	movies      map[int64]models.Movie
	movieGenres map[int64][]int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		directors:   make(map[int64]models.Director),
		genres:      make(map[int64]models.Genre),
		details:     make(map[int64]models.MovieDetail),
		movies:      make(map[int64]models.Movie),
		movieGenres: make(map[int64][]int64),
	}
}

func (db *fakeDB) clone() *fakeDB {
	out := newFakeDB()
	out.nextID = db.nextID
	for k, v := range db.directors {
		out.directors[k] = v
	}
	for k, v := range db.genres {
		out.genres[k] = v
	}
	for k, v := range db.details {
		out.details[k] = v
	}
	for k, v := range db.movies {
		out.movies[k] = v
	}
	for k, v := range db.movieGenres {
		out.movieGenres[k] = append([]int64(nil), v...)
	}
	return out
}

func (db *fakeDB) getMovie(id int64) (*models.Movie, error) {
	m, ok := db.movies[id]
	if !ok || m.DeletedAt != nil {
		return nil, storage.ErrNotFound
	}
	return db.join(m), nil
}

func (db *fakeDB) join(m models.Movie) *models.Movie {
	director := db.directors[m.DirectorID]
	m.Director = &director
	if m.DetailID != nil {
		if d, ok := db.details[*m.DetailID]; ok {
			m.Detail = &d
		}
	}
	for _, gid := range db.movieGenres[m.ID] {
		m.Genres = append(m.Genres, db.genres[gid])
	}
	sort.Slice(m.Genres, func(i, j int) bool { return m.Genres[i].Name < m.Genres[j].Name })
	return &m
}

func (db *fakeDB) listMovies(nameSubstring string) ([]models.Movie, error) {
	var ids []int64
	for id, m := range db.movies {
		if m.DeletedAt != nil {
			continue
		}
		if nameSubstring != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(nameSubstring)) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, *db.join(db.movies[id]))
	}
	return out, nil
}

type fakeStorage struct {
	db *fakeDB
}

func (s *fakeStorage) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	return s.db.getMovie(id)
}

func (s *fakeStorage) ListMovies(_ context.Context, nameSubstring string) ([]models.Movie, error) {
	return s.db.listMovies(nameSubstring)
}

func (s *fakeStorage) Begin(_ context.Context) (storage.CatalogTx, error) {
	return &fakeTx{db: s.db.clone(), origin: s}, nil
}

func (s *fakeStorage) addDirector(name string) int64 {
	s.db.nextID++
	s.db.directors[s.db.nextID] = models.Director{ID: s.db.nextID, Name: name}
	return s.db.nextID
}

type fakeTx struct {
	db     *fakeDB
	origin *fakeStorage
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.origin.db = t.db
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	return nil
}

func (t *fakeTx) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	return t.db.getMovie(id)
}

func (t *fakeTx) ListMovies(_ context.Context, nameSubstring string) ([]models.Movie, error) {
	return t.db.listMovies(nameSubstring)
}

func (t *fakeTx) DirectorExists(_ context.Context, id int64) (bool, error) {
	_, ok := t.db.directors[id]
	return ok, nil
}

func (t *fakeTx) FindOrCreateGenre(_ context.Context, name string) (*models.Genre, error) {
	for _, g := range t.db.genres {
		if g.Name == name {
			return &g, nil
		}
	}
	t.db.nextID++
	genre := models.Genre{ID: t.db.nextID, Name: name}
	t.db.genres[genre.ID] = genre
	return &genre, nil
}

func (t *fakeTx) InsertDetail(_ context.Context, detail string) (*models.MovieDetail, error) {
	for _, d := range t.db.details {
		if d.Detail == detail {
			return nil, storage.ErrConflict
		}
	}
	t.db.nextID++
	d := models.MovieDetail{ID: t.db.nextID, Detail: detail}
	t.db.details[d.ID] = d
	return &d, nil
}

func (t *fakeTx) UpdateDetail(_ context.Context, id int64, detail string) error {
	d, ok := t.db.details[id]
	if !ok {
		return storage.ErrNotFound
	}
	for _, other := range t.db.details {
		if other.ID != id && other.Detail == detail {
			return storage.ErrConflict
		}
	}
	d.Detail = detail
	t.db.details[id] = d
	return nil
}

func (t *fakeTx) DeleteDetail(_ context.Context, id int64) error {
	if _, ok := t.db.details[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.db.details, id)
	return nil
}

func (t *fakeTx) InsertMovie(_ context.Context, name string, characters []string, directorID int64, detailID *int64) (*models.Movie, error) {
	for _, m := range t.db.movies {
		if m.Name == name {
			return nil, storage.ErrConflict
		}
	}
	t.db.nextID++
	now := time.Now()
	movie := models.Movie{
		ID:         t.db.nextID,
		Name:       name,
		Characters: characters,
		DirectorID: directorID,
		DetailID:   detailID,
		Audit:      models.Audit{CreatedAt: now, UpdatedAt: now, Version: 1},
	}
	t.db.movies[movie.ID] = movie
	return &movie, nil
}

func (t *fakeTx) UpdateMovie(_ context.Context, movie *models.Movie) error {
	stored, ok := t.db.movies[movie.ID]
	if !ok || stored.Version != movie.Version {
		return storage.ErrNotFound
	}
	for _, other := range t.db.movies {
		if other.ID != movie.ID && other.Name == movie.Name {
			return storage.ErrConflict
		}
	}
	movie.Version++
	movie.UpdatedAt = time.Now()
	updated := *movie
	updated.Director = nil
	updated.Detail = nil
	updated.Genres = nil
	t.db.movies[movie.ID] = updated
	return nil
}

func (t *fakeTx) DeleteMovie(_ context.Context, id int64) error {
	if _, ok := t.db.movies[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.db.movies, id)
	return nil
}

func (t *fakeTx) ReplaceMovieGenres(_ context.Context, movieID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		delete(t.db.movieGenres, movieID)
		return nil
	}
	t.db.movieGenres[movieID] = append([]int64(nil), genreIDs...)
	return nil
}

func newTestService() (*MovieService, *fakeStorage) {
	store := &fakeStorage{db: newFakeDB()}
	svc := New(slog.New(slog.NewTextHandler(io.Discard, nil)), store)
	return svc, store
}

func strPtr(s string) *string { return &s }

func TestCreateMovie(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Chris Columbus")

	movie, err := svc.Create(context.Background(), CreateMovieInput{
		Name:       "해리포터",
		Characters: []string{"해리포터", "엠마왓슨"},
		DirectorID: directorID,
		Genres:     []string{"fantasy", "adventure"},
		Detail:     strPtr("A boy discovers he is a wizard."),
	})
	require.NoError(t, err)
	assert.Equal(t, "해리포터", movie.Name)
	require.NotNil(t, movie.Director)
	assert.Equal(t, "Chris Columbus", movie.Director.Name)
	require.NotNil(t, movie.Detail)
	assert.Equal(t, "A boy discovers he is a wizard.", movie.Detail.Detail)
	require.Len(t, movie.Genres, 2)
	assert.Equal(t, "adventure", movie.Genres[0].Name)
	assert.Equal(t, "fantasy", movie.Genres[1].Name)
}

func TestCreateMovieMissingDirectorLeavesNothingBehind(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(context.Background(), CreateMovieInput{
		Name:       "orphan",
		Characters: []string{"nobody"},
		DirectorID: 999,
		Genres:     []string{"noir"},
		Detail:     strPtr("never persisted"),
	})
	assert.ErrorIs(t, err, ErrDirectorNotFound)
	assert.Empty(t, store.db.movies)
	assert.Empty(t, store.db.genres)
	assert.Empty(t, store.db.details)
}

func TestCreateMovieDuplicateNameRollsBackDetail(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Bong Joon-ho")
	_, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "Parasite", Characters: []string{"Kim Ki-taek"}, DirectorID: directorID, Genres: []string{"thriller"},
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateMovieInput{
		Name: "Parasite", Characters: []string{"someone"}, DirectorID: directorID,
		Genres: []string{"drama"}, Detail: strPtr("duplicate attempt"),
	})
	assert.ErrorIs(t, err, ErrMovieAlreadyExists)
	assert.Empty(t, store.db.details, "detail row from the failed create must not survive")
	assert.Len(t, store.db.genres, 1, "genre row from the failed create must not survive")
}

func TestGenreFindOrCreateIsSharedAcrossMovies(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Someone")

	first, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "first noir", Characters: []string{"a"}, DirectorID: directorID, Genres: []string{"noir"},
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "second noir", Characters: []string{"b"}, DirectorID: directorID, Genres: []string{"noir"},
	})
	require.NoError(t, err)

	assert.Len(t, store.db.genres, 1, "exactly one genre row named noir")
	require.Len(t, first.Genres, 1)
	require.Len(t, second.Genres, 1)
	assert.Equal(t, first.Genres[0].ID, second.Genres[0].ID)
}

func TestCreateMovieDeduplicatesGenreInput(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Someone")
	movie, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "doubled", Characters: []string{"a"}, DirectorID: directorID, Genres: []string{"noir", "noir"},
	})
	require.NoError(t, err)
	assert.Len(t, movie.Genres, 1)
	assert.Len(t, store.db.genres, 1)
}

func TestUpdateMovie(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Director A")
	otherDirectorID := store.addDirector("Director B")
	movie, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "original", Characters: []string{"hero"}, DirectorID: directorID,
		Genres: []string{"drama"}, Detail: strPtr("first detail"),
	})
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 9999, UpdateMovieInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("detail updated in place keeps its id", func(t *testing.T) {
		originalDetailID := *movie.DetailID
		updated, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{Detail: strPtr("second detail")})
		require.NoError(t, err)
		require.NotNil(t, updated.DetailID)
		assert.Equal(t, originalDetailID, *updated.DetailID)
		assert.Equal(t, "second detail", updated.Detail.Detail)
		assert.Len(t, store.db.details, 1)
	})

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{Name: strPtr("renamed")})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, []string{"hero"}, updated.Characters)
		assert.Equal(t, directorID, updated.DirectorID)
		require.Len(t, updated.Genres, 1)
		assert.Equal(t, "drama", updated.Genres[0].Name)
		assert.Equal(t, "second detail", updated.Detail.Detail)
	})

	t.Run("director reassignment", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{DirectorID: &otherDirectorID})
		require.NoError(t, err)
		assert.Equal(t, otherDirectorID, updated.DirectorID)
		assert.Equal(t, "Director B", updated.Director.Name)
	})

	t.Run("missing director leaves movie unchanged", func(t *testing.T) {
		missing := int64(12345)
		_, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{
			Name:       strPtr("should not stick"),
			DirectorID: &missing,
		})
		assert.ErrorIs(t, err, ErrDirectorNotFound)
		current, err := svc.Get(context.Background(), movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", current.Name)
		assert.Equal(t, otherDirectorID, current.DirectorID)
	})

	t.Run("genre set replacement", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{Genres: []string{"noir", "thriller"}})
		require.NoError(t, err)
		require.Len(t, updated.Genres, 2)
		assert.Equal(t, "noir", updated.Genres[0].Name)
		assert.Equal(t, "thriller", updated.Genres[1].Name)
		// The replaced genre row itself remains for other movies.
		assert.Len(t, store.db.genres, 3)
	})
}

func TestUpdateMovieCreatesDetailWhenMissing(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Someone")
	movie, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "bare", Characters: []string{"a"}, DirectorID: directorID, Genres: []string{"drama"},
	})
	require.NoError(t, err)
	require.Nil(t, movie.DetailID)

	updated, err := svc.Update(context.Background(), movie.ID, UpdateMovieInput{Detail: strPtr("fresh detail")})
	require.NoError(t, err)
	require.NotNil(t, updated.DetailID)
	assert.Equal(t, "fresh detail", updated.Detail.Detail)
	assert.Len(t, store.db.details, 1)
}

func TestDeleteMovie(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Keeper")
	movie, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "doomed", Characters: []string{"a"}, DirectorID: directorID,
		Genres: []string{"shared"}, Detail: strPtr("exclusive detail"),
	})
	require.NoError(t, err)
	survivor, err := svc.Create(context.Background(), CreateMovieInput{
		Name: "survivor", Characters: []string{"b"}, DirectorID: directorID, Genres: []string{"shared"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), movie.ID))

	_, err = svc.Get(context.Background(), movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.Empty(t, store.db.details, "exclusive detail goes with the movie")
	assert.Len(t, store.db.genres, 1, "shared genre stays")
	assert.Len(t, store.db.directors, 1, "director stays")

	remaining, err := svc.Get(context.Background(), survivor.ID)
	require.NoError(t, err)
	require.Len(t, remaining.Genres, 1)
	assert.Equal(t, "shared", remaining.Genres[0].Name)

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(context.Background(), movie.ID), ErrMovieNotFound)
	})
}

func TestListMovies(t *testing.T) {
	svc, store := newTestService()
	directorID := store.addDirector("Chris Columbus")
	names := []string{"harry potter", "harry potter 2", "interstellar"}
	for _, name := range names {
		_, err := svc.Create(context.Background(), CreateMovieInput{
			Name: name, Characters: []string{"someone"}, DirectorID: directorID,
			Genres: []string{"fantasy"}, Detail: strPtr("detail for " + name),
		})
		require.NoError(t, err)
	}

	t.Run("no filter returns everything joined", func(t *testing.T) {
		movies, err := svc.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, movies, 3)
		for _, m := range movies {
			assert.NotNil(t, m.Director)
			assert.NotNil(t, m.Detail)
			assert.NotEmpty(t, m.Genres)
		}
	})
	t.Run("substring filter", func(t *testing.T) {
		movies, err := svc.List(context.Background(), "harry")
		require.NoError(t, err)
		require.Len(t, movies, 2)
		for _, m := range movies {
			assert.Contains(t, m.Name, "harry")
		}
	})
	t.Run("no matches", func(t *testing.T) {
		movies, err := svc.List(context.Background(), "zzz")
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}
