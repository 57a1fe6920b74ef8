package api

import (
	"time" // Cache lifetime

	"vocab_system/internal/middleware" // Auth and logging middleware
	"vocab_system/internal/service"    // Business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps holds everything the HTTP layer needs
type Deps struct {
	DB       *gorm.DB                // Database handle for health checks
	Redis    *redis.Client           // Optional read cache, nil disables caching
	CacheTTL time.Duration           // Lifetime of cached responses
	Catalog  *service.CatalogService // Categories and vocabulary
	Study    *service.StudyService   // Saved words
	Users    *service.UserService    // Accounts and tokens
	Stats    *service.StatsService   // Admin dashboard
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/healthz", HealthHandler(d.DB, d.Redis)) // Liveness and dependency check

	auth := middleware.JWTAuthMiddleware(d.Users) // Resolves the bearer token to a user
	admin := middleware.AdminOnlyMiddleware()     // Requires role admin

	apiGroup := r.Group("/api")

	// User routes
	users := apiGroup.Group("/users")
	users.POST("/register", RegisterHandler(d.Users, d.Redis))             // Registration endpoint
	users.POST("/login", LoginHandler(d.Users))                            // Login endpoint
	users.GET("/profile", auth, ProfileHandler(d.Users))                   // Current user endpoint
	users.PUT("/:id", auth, admin, UpdateUserHandler(d.Users, d.Redis))    // Admin user update
	users.DELETE("/:id", auth, admin, DeleteUserHandler(d.Users, d.Redis)) // Admin user removal

	// Category routes, reads are public
	categories := apiGroup.Group("/categories")
	categories.GET("", ListCategoriesHandler(d.Catalog, d.Redis, d.CacheTTL))
	categories.POST("", auth, admin, CreateCategoryHandler(d.Catalog, d.Redis))
	categories.PUT("/:id", auth, admin, UpdateCategoryHandler(d.Catalog, d.Redis))
	categories.DELETE("/:id", auth, admin, DeleteCategoryHandler(d.Catalog, d.Redis))

	// Vocabulary routes
	vocab := apiGroup.Group("/vocab", auth)
	vocab.GET("", ListVocabHandler(d.Catalog, d.Redis, d.CacheTTL))
	vocab.GET("/:id", GetVocabHandler(d.Catalog))
	vocab.POST("", admin, CreateVocabHandler(d.Catalog, d.Redis))
	vocab.PUT("/:id", admin, UpdateVocabHandler(d.Catalog, d.Redis))
	vocab.DELETE("/:id", admin, DeleteVocabHandler(d.Catalog, d.Redis))

	// Saved word routes, scoped to the caller
	saved := apiGroup.Group("/saved", auth)
	saved.POST("", SaveWordHandler(d.Study, d.Redis))
	saved.GET("", ListSavedWordsHandler(d.Study))
	saved.DELETE("/:id", RemoveSavedWordHandler(d.Study, d.Redis))

	// Admin routes (protected, admin only)
	adminGroup := apiGroup.Group("/admin", auth, admin)
	adminGroup.GET("/stats", StatsHandler(d.Stats, d.Redis, d.CacheTTL)) // Dashboard endpoint
	adminGroup.GET("/users", ListUsersHandler(d.Users, d.Redis, d.CacheTTL))

	return r
}
