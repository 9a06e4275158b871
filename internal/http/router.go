package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/quickfix-labs/quickfix/internal/http/handlers"
	"github.com/quickfix-labs/quickfix/internal/http/middlewares"
	"github.com/quickfix-labs/quickfix/internal/notifications"
	"github.com/quickfix-labs/quickfix/internal/observability"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

// Deps is everything the router needs, wired by main.
type Deps struct {
	Env   string
	Log   *slog.Logger
	Store repo.Store

	Catalog   handlers.ServiceCatalog
	Directory handlers.ProviderDirectory
	Notifier  notifications.Notifier
	JWT       middlewares.TokenVerifier
	Issuer    handlers.TokenIssuer

	Prom     *observability.Prom
	Registry *prometheus.Registry
	Tracing  bool

	// Ready reports whether the active backend can serve reads.
	Ready func() error
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))
	if d.Prom != nil {
		r.Use(d.Prom.GinMiddleware())
	}
	if d.Tracing {
		r.Use(otelgin.Middleware("quickfix-api"))
	}
	r.Use(middlewares.CORSMiddleware(nil))

	// health and metrics
	h := handlers.NewHealthHandler(d.Ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	authHandler := handlers.NewAuthHandler(d.Store, d.Store, d.Issuer, d.Notifier, d.Log)
	servicesHandler := handlers.NewServicesHandler(d.Catalog, d.Log)
	providersHandler := handlers.NewProvidersHandler(d.Directory)
	bookingsHandler := handlers.NewBookingsHandler(d.Store, d.Directory, d.Notifier, d.Log)

	am := middlewares.NewAuthMiddleware(d.JWT)

	// auth endpoints get a tight per-IP budget
	authLimiter := middlewares.NewRateLimiter(20, time.Minute)

	authGroup := r.Group("/auth", authLimiter.Middleware(middlewares.KeyByIP))
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)

	r.GET("/services", servicesHandler.ListServices)
	r.POST("/services", am.RequireAuth(), am.RequireRole("provider"), servicesHandler.AddService)

	r.GET("/providers", providersHandler.ListProviders)
	r.GET("/providers/:id", providersHandler.GetProvider)

	r.POST("/providers/:id/bookings", am.RequireAuth(), bookingsHandler.CreateBooking)
	r.GET("/my/bookings", am.RequireAuth(), bookingsHandler.ListMyBookings)

	return r
}
