package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// PublicRouteRegistrar registers routes that require no authentication
type PublicRouteRegistrar interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// AdminRouteRegistrar registers routes behind seller authentication
type AdminRouteRegistrar interface {
	RegisterAdminRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Storefront and webhook routes
// are mounted at the root; seller routes live under /admin and require
// a valid access token.
type Router struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
	logger     *zap.Logger
	public     []PublicRouteRegistrar
	admin      []AdminRouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithLogger sets the router logger
func WithLogger(logger *zap.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, jwtService *auth.JWTService, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		jwtService: jwtService,
		public:     make([]PublicRouteRegistrar, 0),
		admin:      make([]AdminRouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterPublic adds a public route registrar
func (r *Router) RegisterPublic(registrar PublicRouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// RegisterAdmin adds an admin route registrar
func (r *Router) RegisterAdmin(registrar AdminRouteRegistrar) *Router {
	r.admin = append(r.admin, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	root := r.engine.Group("")
	for _, registrar := range r.public {
		registrar.RegisterPublicRoutes(root)
	}

	adminGroup := r.engine.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: r.jwtService,
		Logger:     r.logger,
	}))
	for _, registrar := range r.admin {
		registrar.RegisterAdminRoutes(adminGroup)
	}
}
