package main

import (
	"context"
	"errors"
	"fmt"
	"kinoteka/proj/internal/services/auth"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil && err != http.ErrAbortHandler {
				app.Http.ServerError(w, r, fmt.Errorf("%v", err), "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
			time.Sleep(5 * time.Minute)
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			mu.Lock()
			if _, ok := clients[ip]; !ok {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst),
				}
			}
			clients[ip].lastSeen = time.Now()
			limiter := clients[ip].limiter
			mu.Unlock()
			log.Debug("rate limiting", "ip", ip, "available requests", limiter.Tokens())
			if !limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyClaims CtxKey = "claims"

// ClaimsFromContext returns the verified identity set by Authenticate, or
// nil for an anonymous request.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(CtxKeyClaims).(*auth.Claims)
	return claims
}

// Authenticate verifies a bearer Authorization header when one is present
// and stores the decoded claims on the request context. Requests without a
// bearer header pass through anonymous; Basic headers are left for the
// signup/login handlers to consume.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer") {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := app.services.Auth.VerifyBearerToken(authHeader, auth.TokenKindAccess)
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
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyClaims, claims))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromContext(r.Context()) == nil {
			app.Http.Unauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
