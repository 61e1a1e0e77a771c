package models

import (
	"kinoteka/proj/internal/domain/fields"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Audit carries the bookkeeping columns shared by every table: creation and
// last-update timestamps, a nullable soft-delete marker and an optimistic
// locking version that is bumped on every update.
type Audit struct {
	CreatedAt time.Time  `json:"-" db:"created_at"`
	UpdatedAt time.Time  `json:"-" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
	Version   int32      `json:"-" db:"version"`
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash []byte `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Audit
}

type Director struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Nationality string    `json:"nationality" db:"nationality"`
	Audit
}

type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Audit
}

// MovieDetail is owned one-to-one by a Movie; it is deleted together with it.
type MovieDetail struct {
	ID     int64  `json:"id" db:"id"`
	Detail string `json:"detail" db:"detail"`
}

type Movie struct {
	ID         int64    `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Characters []string `json:"characters" db:"characters"`
	DirectorID int64    `json:"-" db:"director_id"`
	DetailID   *int64   `json:"-" db:"detail_id"`
	Audit

	// Populated by joined reads, not stored on the movies table itself.
	Director *Director    `json:"director,omitempty" db:"-"`
	Detail   *MovieDetail `json:"detail,omitempty" db:"-"`
	Genres   []Genre      `json:"genres,omitempty" db:"-"`
}

// MovieProjection is the externally visible shape of a movie: audit and
// version columns are hidden, timestamps are rendered in display form.
type MovieProjection struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Characters []string           `json:"characters"`
	Director   *Director          `json:"director,omitempty"`
	Genres     []string           `json:"genres"`
	Detail     *string            `json:"detail"`
	CreatedAt  fields.DisplayTime `json:"created_at"`
	UpdatedAt  fields.DisplayTime `json:"updated_at"`
}

func (m *Movie) Projection() *MovieProjection {
	p := &MovieProjection{
		ID:         m.ID,
		Name:       m.Name,
		Characters: m.Characters,
		Director:   m.Director,
		Genres:     make([]string, 0, len(m.Genres)),
		CreatedAt:  fields.DisplayTime(m.CreatedAt),
		UpdatedAt:  fields.DisplayTime(m.UpdatedAt),
	}
	for _, g := range m.Genres {
		p.Genres = append(p.Genres, g.Name)
	}
	if m.Detail != nil {
		p.Detail = &m.Detail.Detail
	}
	return p
}
