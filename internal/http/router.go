// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, token authentication, idempotency, and rate
// limiting.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/docs"
	"github.com/tbourn/pugorugh-backend/internal/config"
	"github.com/tbourn/pugorugh-backend/internal/http/handlers"
	"github.com/tbourn/pugorugh-backend/internal/http/middleware"
	"github.com/tbourn/pugorugh-backend/internal/repo"
	"github.com/tbourn/pugorugh-backend/internal/services"
)

const maxBodyBytes = 1 << 20

// Services bundles the application services the router mounts. Build it
// with NewServices or assemble it by hand in tests.
type Services struct {
	Users   *services.UserService
	Prefs   *services.PreferenceService
	Catalog *services.CatalogService
	Select  *services.Selector
	Status  *services.StatusService
}

// NewServices wires every service to db through the repo adapters.
func NewServices(db *gorm.DB, cfg config.Config) Services {
	dogs, ledger, prefs := repo.DogStore{}, repo.LedgerStore{}, repo.PreferenceStore{}
	catalog := services.NewCatalogService(db, dogs)
	if cfg.IdempotencyTTL > 0 {
		catalog.IdempotencyTTL = cfg.IdempotencyTTL
	}
	return Services{
		Users:   services.NewUserService(db, repo.UserStore{}, cfg.BcryptCost),
		Prefs:   services.NewPreferenceService(db, prefs),
		Catalog: catalog,
		Select:  services.NewSelector(db, dogs, ledger, prefs),
		Status:  services.NewStatusService(db, dogs, ledger),
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Global middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. access log (redacting unless disabled)
//  4. Recovery
//  5. body size limit, gzip, metrics
//  6. CORS and security headers
//
// The API group is split in two: register/login are public and limited per
// client IP; everything else runs Auth, then the idempotency validator, then
// the rate limiter keyed by user.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	} else {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
		Expose:       exposedHeaders,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svc := NewServices(db, cfg)
	h := handlers.New(svc.Users, svc.Prefs, svc.Catalog, svc.Select, svc.Status)
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())

	api := groupWithPrefix(r, cfg.APIBasePath)

	public := api.Group("")
	public.Use(rl.Handler())
	{
		public.POST("/user/", h.Register)
		public.POST("/user/login/", h.Login)
	}

	authed := api.Group("")
	authed.Use(
		middleware.Auth(svc.Users.Authenticate),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idempotencyLookup(db)),
		rl.Handler(),
	)
	{
		authed.GET("/user/preferences/", h.GetPreferences)
		authed.PUT("/user/preferences/", h.UpdatePreferences)

		authed.PUT("/dog/:id/:status/", h.SetStatus)
		authed.GET("/dog/:id/:status/next/", h.NextDog)
		authed.DELETE("/dog/:id/undecided/", h.ClearUndecided)

		authed.GET("/dogs/", h.ListDogs)
		authed.POST("/dogs/", h.CreateDogs)
		authed.GET("/dogs/:status/", h.ListDogsByStatus)
	}
	return nil
}

var exposedHeaders = []string{"X-Request-ID", "ETag", handlers.HeaderIdempotencyReplayed}

// corsMiddleware allows every origin when the allowlist is empty and echoes
// allowlisted origins otherwise. Credentials are never allowed; the API
// authenticates with a header token.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders: exposedHeaders,
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		allowAll := cors.New(cc)
		return func(c *gin.Context) {
			// Set even without an Origin header so plain clients see it too.
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			allowAll(c)
		}
	}
	cc.AllowOrigins = origins
	return cors.New(cc)
}

// idempotencyLookup reports whether a live record exists for the request.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID int64, scope, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return false, nil
		case err != nil:
			return false, err
		}
		return true, nil
	}
}

// healthHandler pings the database and answers 503 when it is unreachable.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("health: database unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}

// limitBody caps the request body at maxBytes. Reads past the cap fail,
// which the handlers report as a bad request.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
