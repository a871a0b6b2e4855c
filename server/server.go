package server

import (
	"net/http"

	"github.com/cantuslab/cantus/config"
	"github.com/cantuslab/cantus/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Use(authenticate(cfg))

	h, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	r.Route("/v1", func(r chi.Router) {
		h.Attach(r)
	})

	return &Server{
		Config: cfg,

		handler: otelhttp.NewHandler(r, "server"),
	}, nil
}

// authenticate accepts the request when any configured authorizer does.
// Without authorizers every request passes.
func authenticate(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(cfg.Authorizers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, authorizer := range cfg.Authorizers {
				ctx, err := authorizer.Authenticate(r.Context(), r)

				if err == nil {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		})
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.Address, s.handler)
}
