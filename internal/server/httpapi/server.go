// Package httpapi exposes the record-management pipeline over HTTP. It owns
// the routing table, bearer-token extraction, and the single mapping from
// service errors to response statuses.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/catkeeper/internal/logging"
	"github.com/dmitrijs2005/catkeeper/internal/server/auth"
	"github.com/dmitrijs2005/catkeeper/internal/server/geo"
	"github.com/dmitrijs2005/catkeeper/internal/server/models"
	"github.com/dmitrijs2005/catkeeper/internal/server/services"
	"github.com/dmitrijs2005/catkeeper/internal/server/upload"
)

type userService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.MessageResponse, error)
	Update(ctx context.Context, p *auth.Principal, id int64, fields map[string]any) (*models.MessageResponse, error)
	UpdateCurrent(ctx context.Context, p *auth.Principal, fields map[string]any) (*models.MessageResponse, error)
	Delete(ctx context.Context, p *auth.Principal, id int64) (*models.MessageResponse, error)
	DeleteCurrent(ctx context.Context, p *auth.Principal) (*models.MessageResponse, error)
}

type catService interface {
	List(ctx context.Context) ([]*models.Cat, error)
	Get(ctx context.Context, id int64) (*models.Cat, error)
	ImageURL(ctx context.Context, id int64) (string, error)
	Create(ctx context.Context, p *auth.Principal, in *services.CreateCatInput) (*models.MessageResponse, error)
	Update(ctx context.Context, p *auth.Principal, id int64, fields map[string]any) (*models.MessageResponse, error)
	Delete(ctx context.Context, p *auth.Principal, id int64) (*models.MessageResponse, error)
}

type authService interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     userService
	cats      catService
	auth      authService
	store     upload.Store
	geo       geo.Source
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us userService, cs catService, as authService,
	store upload.Store, geoSource geo.Source, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		cats:      cs,
		auth:      as,
		store:     store,
		geo:       geoSource,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the routing table. List and get are open to anonymous
// callers; mutations rely on the services' own authorization checks, so no
// route-level guard is applied beyond principal extraction.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.principalCtx)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.userList)
			r.Post("/", s.userCreate)
			r.Put("/", s.userUpdateCurrent)
			r.Delete("/", s.userDeleteCurrent)
			r.Get("/token", s.checkToken)
			r.Get("/{id}", s.userGet)
			r.Put("/{id}", s.userUpdate)
			r.Delete("/{id}", s.userDelete)
		})

		r.Route("/cats", func(r chi.Router) {
			r.Get("/", s.catList)
			r.Post("/", s.catCreate)
			r.Get("/{id}", s.catGet)
			r.Put("/{id}", s.catUpdate)
			r.Delete("/{id}", s.catDelete)
			r.Get("/{id}/image", s.catImage)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/refresh", s.refresh)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
