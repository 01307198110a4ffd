// Package server wires the HTTP surface: routing, middleware, session
// gating and the request handlers.
package server

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all application dependencies and the Fiber app.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	sessions session.Store

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository

	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer connects the database and Redis and assembles a ready-to-run
// server. Redis being down degrades sessions to the in-process store rather
// than failing startup.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, ttl)
	} else {
		middleware.Logger.Warn("Redis unavailable, sessions will not survive a restart")
		store = session.NewMemoryStore(ttl)
	}

	return NewServerWithDeps(cfg, db, redisClient, store), nil
}

// NewServerWithDeps assembles a server from externally constructed
// dependencies. Tests use this with an in-memory database and session store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store session.Store) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		prom:     middleware.InitMetrics("quill"),
		sessions: store,

		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,

		authService:    service.NewAuthService(userRepo),
		postService:    service.NewPostService(postRepo),
		commentService: service.NewCommentService(commentRepo, postRepo),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "quill",
		DisableStartupMessage: cfg.Env == "test",
	})

	s.SetupMiddleware()
	s.SetupRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware installs the global middleware chain. Order matters:
// recover first, then request IDs so the context logger can pick them up.
func (s *Server) SetupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(middleware.MetricsMiddleware(s.prom))
	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return s.config.Env == "test" || s.config.Env == "development"
		},
	}))
}

// SetupRoutes registers all routes. The root path serves the login view;
// everything under the session gate lives in the authed group.
func (s *Server) SetupRoutes() {
	s.app.Get("/health/live", s.HealthLive)
	s.app.Get("/health/ready", s.HealthReady)
	s.prom.RegisterAt(s.app, "/metrics")

	s.app.Get("/", s.LoginPage)
	s.app.Get("/login", s.LoginPage)
	s.app.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	s.app.Get("/register", s.RegisterPage)
	s.app.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	s.app.Get("/logout", s.Logout)

	authed := s.app.Group("", s.SessionRequired())
	authed.Get("/index", s.ListPosts)
	authed.Get("/posts", s.ListPosts)
	authed.Get("/new", s.NewPostPage)
	authed.Post("/new", s.CreatePost)
	authed.Get("/posts/edit/:id", s.EditPostPage)
	authed.Post("/posts/edit/:id", s.UpdatePost)
	authed.Post("/posts/delete/:id", s.DeletePost)
	authed.Get("/posts/:id", s.GetPost)
	authed.Post("/posts/:id/like", s.LikePost)
	authed.Post("/posts/:id/comment", s.CreateComment)
}

// HealthLive reports process liveness.
func (s *Server) HealthLive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HealthReady reports readiness of the backing stores. Redis being down does
// not fail readiness since the server degrades without it.
func (s *Server) HealthReady(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			healthy = false
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}
	} else {
		healthy = false
		checks["database"] = "down"
	}

	if s.redis != nil {
		if err := s.redis.Ping(c.UserContext()).Err(); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := fiber.StatusOK
	result := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		result = "unavailable"
	}
	return c.Status(status).JSON(fiber.Map{"status": result, "checks": checks})
}

// Listen starts serving on the configured host and port.
func (s *Server) Listen() error {
	return s.app.Listen(s.config.Host + ":" + s.config.Port)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
