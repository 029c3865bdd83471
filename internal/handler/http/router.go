package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig reúne o que o roteador precisa para ser montado.
type RouterConfig struct {
	Handler        *BillingHandler
	APISecret      string // vazio desliga a autenticação (apenas APP_ENV=dev)
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Metrics é o middleware de métricas HTTP; opcional.
	Metrics func(http.Handler) http.Handler
}

// NewRouter monta o roteador chi com as rotas públicas e as protegidas por token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics)
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORS(cfg.AllowedOrigins))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// Rotas públicas
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Service running",
			"docs":    "/swagger/index.html",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rotas protegidas
	r.Group(func(r chi.Router) {
		if cfg.APISecret != "" {
			r.Use(BearerAuth(cfg.APISecret))
		}
		cfg.Handler.RegisterRoutes(r)
	})

	return r
}
