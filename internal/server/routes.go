package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/server/api"
	"github.com/estately/estately/internal/server/biz"
	"github.com/estately/estately/internal/server/middleware"
	"github.com/estately/estately/internal/storage"
)

type Handlers struct {
	fx.In

	System      *api.SystemHandlers
	Auth        *api.AuthHandlers
	User        *api.UserHandlers
	Application *api.ApplicationHandlers
	Property    *api.PropertyHandlers
	Favorite    *api.FavoriteHandlers
	Inquiry     *api.InquiryHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
}

func SetupRoutes(server *Server, handlers Handlers, services Services, storageCfg storage.Config) {
	server.Use(middleware.AccessLog())

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	// Uploaded images are served straight from the local store.
	if storageCfg.Backend == "os" || storageCfg.Backend == "" {
		baseURL := storageCfg.PublicBaseURL
		if baseURL == "" {
			baseURL = "/images"
		}

		dir := storageCfg.Dir
		if dir == "" {
			dir = "data/images"
		}

		server.Static(baseURL, dir)
	}

	// Health check endpoint - no authentication required
	server.GET("/health", handlers.System.Health)

	accounts := server.Group("/api/accounts")
	{
		// Sign in and registration - DO NOT AUTH
		accounts.POST("/auth/signin", handlers.Auth.SignIn)
		accounts.POST("/users", handlers.User.Register)
	}

	accountsAuth := server.Group("/api/accounts", middleware.WithJWTAuth(services.AuthService))
	{
		accountsAuth.GET("/users", handlers.User.List)
		accountsAuth.PATCH("/users/:id/role", handlers.User.ChangeRole)

		accountsAuth.POST("/seller-applications", handlers.Application.Submit)
		accountsAuth.GET("/seller-applications", handlers.Application.List)
		accountsAuth.PATCH("/seller-applications/:id", handlers.Application.Review)
	}

	// The public feed and detail view still honor visibility for signed-in
	// callers, hence the optional auth.
	properties := server.Group("/api/properties", middleware.WithOptionalJWTAuth(services.AuthService))
	{
		properties.GET("", handlers.Property.List)
		properties.GET("/:id", handlers.Property.Get)
	}

	propertiesAuth := server.Group("/api/properties", middleware.WithJWTAuth(services.AuthService))
	{
		propertiesAuth.POST("", handlers.Property.Create)
		propertiesAuth.GET("/mine", handlers.Property.Mine)
		propertiesAuth.PUT("/:id", handlers.Property.Update)
		propertiesAuth.DELETE("/:id", handlers.Property.Delete)
		propertiesAuth.PATCH("/:id/approval", handlers.Property.Review)
		propertiesAuth.PATCH("/:id/publish", handlers.Property.Publish)
	}

	favorites := server.Group("/api/favorites", middleware.WithJWTAuth(services.AuthService))
	{
		favorites.GET("", handlers.Favorite.List)
		favorites.POST("", handlers.Favorite.Add)
		favorites.DELETE("", handlers.Favorite.Remove)
	}

	inquiries := server.Group("/api/inquiries", middleware.WithJWTAuth(services.AuthService))
	{
		inquiries.GET("", handlers.Inquiry.List)
		inquiries.POST("", handlers.Inquiry.Create)
	}
}
