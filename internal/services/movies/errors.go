package movies

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrDirectorNotFound   = errors.New("director not found")
	ErrMovieAlreadyExists = errors.New("movie with that name already exists")
	ErrDetailAlreadyInUse = errors.New("that detail text already belongs to another movie")
)
