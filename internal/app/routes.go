package app

import (
	"github.com/aigallery/core/internal/middleware"
	"github.com/aigallery/core/internal/modules/auth/identity"
	"github.com/aigallery/core/internal/modules/media/catalog"
	"github.com/aigallery/core/internal/modules/media/ingest"
	jwtpkg "github.com/aigallery/core/internal/pkg/jwt"
	"github.com/aigallery/core/internal/pkg/objectstore"
	pkgredis "github.com/aigallery/core/internal/pkg/redis"
	"github.com/aigallery/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

func (a *App) registerRoutes(signer *jwtpkg.Signer, store objectstore.Store, rc *pkgredis.Client) {
	resolver := identity.NewResolver(a.db, signer)
	verifier := identity.NewGoogleVerifier(a.cfg.GoogleClientID)

	identitySvc := identity.NewService(a.db, signer, verifier)
	ingestSvc := ingest.NewService(a.db, store, a.logger, a.cfg.MaxUploadBytes())
	catalogSvc := catalog.NewService(a.db)

	adminMW := middleware.AdminAuth(resolver)
	cacheMW := middleware.HTTPCache(rc.Raw())

	api := a.router.Group(apiPrefix)
	// Session resolution runs first so the rate limiter and response cache
	// can tell signed-in traffic apart from anonymous traffic.
	api.Use(middleware.OptionalUser(resolver))
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Idempotence(rc.Raw()))

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	identity.NewHandler(identitySvc, resolver).RegisterRoutes(api)
	ingest.NewHandler(ingestSvc).RegisterRoutes(api, adminMW)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api, adminMW, cacheMW)

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
}
