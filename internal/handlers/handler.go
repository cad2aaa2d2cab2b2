package handlers

import (
	"net/http"

	"booktracker/internal/logger"
	"booktracker/internal/models"
	"booktracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries HTTP-layer knobs read from configuration at startup.
type Config struct {
	CORSOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	registerBookStatusValidation()

	router := gin.New()
	router.Use(gin.Recovery())

	if len(h.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints (public)
	h.registerAuthRoutes(router)

	// Book endpoints (protected)
	h.registerBookRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerBookRoutes(r *gin.Engine) {
	books := r.Group("/api/books", h.authMiddleware)
	{
		books.GET("", h.listBooks)
		books.POST("", h.createBook)
		books.PUT("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

// registerBookStatusValidation makes the "bookstatus" tag available to
// request DTO binding. Registering twice is harmless.
func registerBookStatusValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("bookstatus", func(fl validator.FieldLevel) bool {
			return models.IsValidStatus(fl.Field().String())
		})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
