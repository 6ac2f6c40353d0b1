package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"emsconsole/internal/domain/dashboard"
	"emsconsole/internal/domain/employee"
	"emsconsole/internal/domain/leave"
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/domain/payroll"
	"emsconsole/internal/domain/profile"
	"emsconsole/internal/domain/session"
	"emsconsole/internal/gateway"
	"emsconsole/internal/platform/config"
	"emsconsole/internal/platform/crypto"
	"emsconsole/internal/platform/db"
	"emsconsole/internal/platform/jobs"
	"emsconsole/internal/platform/metrics"
	"emsconsole/internal/platform/telemetry"
	"emsconsole/internal/transport/http/api"
	authhandler "emsconsole/internal/transport/http/handlers/auth"
	dashboardhandler "emsconsole/internal/transport/http/handlers/dashboard"
	employeehandler "emsconsole/internal/transport/http/handlers/employees"
	formshandler "emsconsole/internal/transport/http/handlers/forms"
	leavehandler "emsconsole/internal/transport/http/handlers/leave"
	payrollhandler "emsconsole/internal/transport/http/handlers/payroll"
	profilehandler "emsconsole/internal/transport/http/handlers/profile"
	"emsconsole/internal/transport/http/middleware"
)

const ServiceName = "ems-console"

type App struct {
	Config   config.Config
	DB       *db.Pool
	Sessions *session.Manager
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
	Router   http.Handler
}

// Deps is what the router needs. Ready reports whether the backing stores
// can serve; nil means always ready.
type Deps struct {
	Config   config.Config
	Client   *gateway.Client
	Sessions *session.Manager
	Cookies  *session.CookieCodec
	Metrics  *metrics.Collector
	Ready    func(context.Context) error
}

// New builds the application from cfg: session store, gateway, services and
// router. Close releases what it opened.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	collector := metrics.New()
	client := gateway.NewFromConfig(cfg, collector)

	app := &App{Config: cfg, Metrics: collector}
	var store session.Store = session.NewMemoryStore()
	var ready func(context.Context) error

	if cfg.SessionStore == config.SessionStorePostgres {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		sealer, err := crypto.New(cfg.DataEncryptionKey)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if !sealer.Configured() {
			log.Warn().Msg("DATA_ENCRYPTION_KEY not set, upstream tokens are stored unsealed")
		}
		app.DB = pool
		store = session.NewPostgresStore(pool, sealer)
		ready = func(ctx context.Context) error { return pool.Ping(ctx) }
	}

	app.Sessions = session.NewManager(store, client, cfg.SessionTTL)
	app.Jobs = jobs.New(app.Sessions, cfg.SessionSweepInterval)
	app.Router = NewRouter(Deps{
		Config:   cfg,
		Client:   client,
		Sessions: app.Sessions,
		Cookies:  session.NewCookieCodec(cfg.SessionSecret, cfg.CookieSecure),
		Metrics:  collector,
		Ready:    ready,
	})
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func NewRouter(d Deps) http.Handler {
	seq := listing.NewSequencer()
	employees := employee.NewService(d.Client, seq)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(d.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(d.Config.IsProduction()))
	router.Use(middleware.BodyLimit(d.Config.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				http.Error(w, "session store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if d.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, d.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route(middleware.APIPrefix, func(r chi.Router) {
		r.Use(middleware.AuthRateLimit(d.Config.RateLimitPerMinute, time.Minute))

		authHandler := authhandler.NewHandler(d.Sessions, d.Cookies, d.Client)
		authHandler.RegisterPublicRoutes(r)
		formshandler.NewHandler(d.Client, d.Metrics).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(d.Sessions, d.Cookies))
			r.Use(middleware.RateLimit(d.Config.RateLimitPerMinute, time.Minute))

			authHandler.RegisterRoutes(r)
			dashboardhandler.NewHandler(dashboard.NewService(d.Client, employees, d.Sessions)).RegisterRoutes(r)
			employeehandler.NewHandler(employees).RegisterRoutes(r)
			leavehandler.NewHandler(leave.NewService(d.Client, seq)).RegisterRoutes(r)
			payrollhandler.NewHandler(payroll.NewService(d.Client, seq)).RegisterRoutes(r)
			profilehandler.NewHandler(profile.NewService(d.Client)).RegisterRoutes(r)
		})
	})

	if d.Config.FrontendDir != "" {
		router.Mount("/", spaHandler{staticPath: d.Config.FrontendDir, indexPath: "index.html"})
	}

	return otelhttp.NewHandler(router, ServiceName)
}

// Run serves the console until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, cfg config.Config) error {
	shutdownTracer, err := telemetry.InitTracer(ctx, ServiceName, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	app.Jobs.Start(jobCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("upstream", cfg.APIBaseURL).Str("sessionStore", cfg.SessionStore).Msg("EMS console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
