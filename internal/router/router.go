package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/config"
	"github.com/acadstack/qcatalog-backend/internal/handler"
	"github.com/acadstack/qcatalog-backend/internal/middleware"
	"github.com/acadstack/qcatalog-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Branch   *handler.BranchHandler
	Semester *handler.SemesterHandler
	Subject  *handler.SubjectHandler
	Question *handler.QuestionHandler
}

// SetupRouter configures the nested catalog routes with appropriate
// middlewares. Every resource lives under its full ancestor path so the
// handlers can enforce existence checks top-down.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Throttle mutations only; reads stay unthrottled.
	var writeGuard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.WriteRateLimit > 0 {
		writeGuard = middleware.NewRateLimiter(cfg.WriteRateLimit, time.Minute).Middleware()
	}

	api := router.Group("/api")

	branches := api.Group("/branches")
	{
		branches.GET("", handlers.Branch.List)
		branches.POST("", writeGuard, handlers.Branch.Create)
		branches.GET("/:branchId", handlers.Branch.Get)
		branches.DELETE("/:branchId", writeGuard, handlers.Branch.Delete)
	}

	semesters := branches.Group("/:branchId/semesters")
	{
		semesters.GET("", handlers.Semester.List)
		semesters.POST("", writeGuard, handlers.Semester.Create)
		semesters.GET("/:semesterId", handlers.Semester.Get)
		semesters.DELETE("/:semesterId", writeGuard, handlers.Semester.Delete)
	}

	subjects := semesters.Group("/:semesterId/subjects")
	{
		subjects.GET("", handlers.Subject.List)
		subjects.POST("", writeGuard, handlers.Subject.Create)
		subjects.GET("/:subjectId", handlers.Subject.Get)
		subjects.DELETE("/:subjectId", writeGuard, handlers.Subject.Delete)
	}

	questions := subjects.Group("/:subjectId/questions")
	{
		questions.GET("", handlers.Question.List)
		questions.POST("", writeGuard, handlers.Question.Create)
		questions.GET("/:questionId", handlers.Question.Get)
		questions.DELETE("/:questionId", writeGuard, handlers.Question.Delete)
	}

	return router
}
