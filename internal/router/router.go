// Package router wires controllers and middleware into the HTTP surface.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"videogames-be/internal/controllers"
	"videogames-be/internal/entities"
	"videogames-be/internal/middleware"
	"videogames-be/internal/projection"
	"videogames-be/internal/service"
)

// Deps are the collaborators the router needs. The rate limiters are
// optional.
type Deps struct {
	Logger       *slog.Logger
	Tokens       middleware.TokenValidator
	Auth         service.AuthService
	Categories   service.CategoryService
	Editors      service.EditorService
	VideoGames   service.VideoGameService
	Users        service.UserService
	PublicURL    string
	MaxPageLimit int
	APILimiter   *middleware.RateLimiter
	AuthLimiter  *middleware.RateLimiter
}

// New builds the gin engine. Reads of the catalogue are public; every
// mutation and every /api/users route requires ROLE_ADMIN.
func New(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Health check endpoint (no rate limiting)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if d.APILimiter != nil {
		api.Use(d.APILimiter.LimitMiddleware())
	}

	login := []gin.HandlerFunc{}
	if d.AuthLimiter != nil {
		login = append(login, d.AuthLimiter.LimitMiddleware())
	}
	login = append(login, controllers.NewAuthController(d.Auth).Login)
	api.POST("/login_check", login...)

	admin := []gin.HandlerFunc{
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRoles(entities.RoleAdmin),
	}

	resource(api.Group("/categories"), controllers.NewCategoryController(d.Categories, d.MaxPageLimit), nil, admin)
	resource(api.Group("/editors"), controllers.NewEditorController(d.Editors, d.MaxPageLimit), nil, admin)
	games := api.Group("/video-games")
	resource(games, controllers.NewVideoGameController(d.VideoGames, d.MaxPageLimit), nil, admin)
	games.GET("/:id/qrcode", controllers.NewQRCodeController(d.VideoGames, d.PublicURL).GenerateQRCode)
	resource(api.Group("/users"), controllers.NewUserController(d.Users, d.MaxPageLimit), admin, admin)

	return r
}

// resource mounts the CRUD routes of one kind, guarding reads and writes
// with their own middleware chains.
func resource[T projection.Record](g *gin.RouterGroup, rc *controllers.ResourceController[T], read, write []gin.HandlerFunc) {
	g.GET("", chain(read, rc.List)...)
	g.GET("/:id", chain(read, rc.Get)...)
	g.POST("", chain(write, rc.Create)...)
	g.PUT("/:id", chain(write, rc.Update)...)
	g.DELETE("/:id", chain(write, rc.Delete)...)
}

func chain(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	return append(append(out, guards...), h)
}
