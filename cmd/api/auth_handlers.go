package main

import (
	"errors"
	"kinoteka/proj/internal/services/auth"
	"net/http"
)

// signup creates an account from an "Authorization: Basic base64(email:pw)"
// header. The response never includes the password in any form.
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Auth.Register(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMalformedCredential):
			app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Basic base64(email:password)'")
		case errors.Is(err, auth.ErrDuplicateCredential):
			app.Http.Conflict(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "Account created")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	tokens, err := app.services.Auth.Login(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMalformedCredential):
			app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Basic base64(email:password)'")
		case errors.Is(err, auth.ErrInvalidCredential):
			app.Http.Unauthorized(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"tokens": tokens}, "Logged in")
}

// refreshTokens exchanges a refresh bearer token for a new pair. Expiry is
// reported separately from forgery so clients know re-login is required.
func (app *Application) refreshTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := app.services.Auth.Refresh(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMalformedCredential):
			app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
		case errors.Is(err, auth.ErrExpiredCredential):
			app.Http.Unauthorized(w, r, "Expired token")
		case errors.Is(err, auth.ErrInvalidCredential):
			app.Http.Unauthorized(w, r, "Invalid token")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"tokens": tokens}, "Tokens refreshed")
}
