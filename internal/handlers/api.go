// Package handlers is the HTTP transport glue: routing, token transport, and
// the mapping of service failures onto status codes. All authorization
// decisions live below it, in the auth and scripts packages.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workshop/internal/auth"
	"workshop/internal/db"
	"workshop/internal/events"
	"workshop/internal/scripts"
)

// TokenCookie carries the session token for browser clients; the
// Authorization header takes precedence when both are present.
const TokenCookie = "workshop_token"

// Config controls transport behaviour of the HTTP layer.
type Config struct {
	AllowedOrigins []string
	CookieDomain   string
	CookieSecure   bool
}

// API wires the services and transport configuration for the HTTP handlers.
type API struct {
	auth    *auth.Service
	scripts *scripts.Service
	pool    *pgxpool.Pool
	bus     *events.Publisher
	config  Config
}

func New(authSvc *auth.Service, scriptSvc *scripts.Service, pool *pgxpool.Pool, bus *events.Publisher, cfg Config) (*API, error) {
	if authSvc == nil {
		return nil, errors.New("auth service is required")
	}
	if scriptSvc == nil {
		return nil, errors.New("scripts service is required")
	}
	return &API{
		auth:    authSvc,
		scripts: scriptSvc,
		pool:    pool,
		bus:     bus,
		config:  cfg,
	}, nil
}

// Routes constructs the chi router containing all endpoints.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := a.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if a.pool != nil {
			if err := db.Ping(req.Context(), a.pool); err != nil {
				respondError(w, http.StatusServiceUnavailable, err)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)
		r.Post("/auth/logout", a.handleLogout)
		r.Delete("/auth/account", a.handleDeleteAccount)

		r.Get("/users/me", a.handlePrivateUser)
		r.Patch("/users/me", a.handleUpdateProfile)
		r.Get("/users/{idOrPseudo}", a.handlePublicUser)

		r.Post("/scripts", a.handleCreateScript)
		r.Get("/scripts", a.handleListScripts)
		r.Get("/scripts/{id}", a.handleGetScript)
		r.Delete("/scripts/{id}", a.handleDeleteScript)
	})

	return r
}

func (a *API) publishJSON(subject string, payload map[string]any) {
	a.bus.PublishJSON(subject, payload)
}

// bearerToken extracts the session token from the Authorization header or,
// failing that, the session cookie. Missing token is the empty string; the
// services treat that as anonymous.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *API) setTokenCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   a.config.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
