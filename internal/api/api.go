package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/susu3304/posbot/internal/config"
	"github.com/susu3304/posbot/internal/shift"
	"golang.org/x/oauth2"
)

type API struct {
	router         *mux.Router
	engine         *shift.Engine
	config         *config.Config
	oauthConfig    *oauth2.Config
	jwtSecret      []byte
	discordAPIBase string
	server         *http.Server
}

func New(cfg *config.Config, engine *shift.Engine) *API {
	api := &API{
		router:         mux.NewRouter(),
		engine:         engine,
		config:         cfg,
		jwtSecret:      []byte(cfg.JWTSecret),
		discordAPIBase: "https://discord.com/api",
	}
	if cfg.LoginEnabled() {
		api.oauthConfig = &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/api/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		}
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Public endpoints
	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")
	a.router.HandleFunc("/api/catalog", a.handleCatalog).Methods("GET")

	// Without login no token can be issued, so no per-user route is served.
	if a.oauthConfig == nil {
		return
	}

	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("GET")
	a.router.HandleFunc("/api/auth/callback", a.handleCallback).Methods("GET")

	// Protected endpoints, scoped to the token's user
	protected := a.router.PathPrefix("/api/me").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/intents", a.handleIntent).Methods("POST")
	protected.HandleFunc("/summary", a.handleSummary).Methods("GET")
}

// Handler returns the router wrapped with CORS.
func (a *API) Handler() http.Handler {
	// The web UI origin is pinned, so the OAuth state cookie may travel with requests.
	corsOptions := cors.Options{
		AllowedOrigins:   []string{a.config.WebUIBaseURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	return cors.New(corsOptions).Handler(a.router)
}

func (a *API) Start() error {
	a.server = &http.Server{
		Addr:              a.config.WebBind,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("API server listening on http://%s", a.config.WebBind)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
