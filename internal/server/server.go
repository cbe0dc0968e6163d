package server

import (
	"net/http"
	"time"

	"anoa.com/fedipost/internal/config"
	"anoa.com/fedipost/internal/middleware"
	"anoa.com/fedipost/pkg/logger"

	attachmentRepo "anoa.com/fedipost/internal/modules/attachment/repository"
	"anoa.com/fedipost/internal/modules/federation"
	postHttp "anoa.com/fedipost/internal/modules/post/delivery/http"
	postRepo "anoa.com/fedipost/internal/modules/post/repository"
	postService "anoa.com/fedipost/internal/modules/post/service"
	reactionRepo "anoa.com/fedipost/internal/modules/reaction/repository"
	userRepo "anoa.com/fedipost/internal/modules/user/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	log    *logger.Logger
}

// Dependencies lets callers replace the collaborators at the boundary.
// Nil fields get the production implementation.
type Dependencies struct {
	Access     middleware.AccessChecker
	Dispatcher federation.Dispatcher
}

func NewServer(cfg *config.Config, db *gorm.DB, log *logger.Logger, deps Dependencies) *Server {
	if deps.Dispatcher == nil {
		renderer := federation.NewRenderer(cfg.Domain, cfg.FederationActor)
		deliverer := federation.NewHTTPDeliverer(
			&http.Client{Timeout: cfg.FederationTimeout},
			cfg.FederationInboxes,
			log.With("component", "federation"),
		)
		deps.Dispatcher = federation.NewDispatcher(renderer, deliverer)
	}
	if deps.Access == nil {
		deps.Access = middleware.NewJWTAccess(cfg.JWTSecret)
	}

	postRepository := postRepo.NewPostRepository(db)
	attachmentRepository := attachmentRepo.NewAttachmentRepository(db)
	reactionRepository := reactionRepo.NewReactionRepository(db)
	userRepository := userRepo.NewUserRepository(db)

	postSvc := postService.NewPostService(postRepository, attachmentRepository, reactionRepository, userRepository, deps.Dispatcher, log, cfg.Domain)
	postHandler := postHttp.NewPostHandler(postSvc, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.RequireAccess(deps.Access))
	{
		postHandler.Register(api.Group("/posts"))
	}

	return &Server{
		engine: router,
		db:     db,
		log:    log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.log.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
