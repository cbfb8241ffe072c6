package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang-restaurant-explorer/configs"
	"golang-restaurant-explorer/internal/handlers"
	"golang-restaurant-explorer/internal/metrics"
	"golang-restaurant-explorer/internal/middleware"
	"golang-restaurant-explorer/internal/repositories"
	"golang-restaurant-explorer/internal/services"
	"golang-restaurant-explorer/pkg/cache"
	"golang-restaurant-explorer/pkg/logging"
	"golang-restaurant-explorer/pkg/messaging"
	"golang-restaurant-explorer/pkg/restaurantapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the restaurant page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		format := config.Log.Format
		if config.IsProduction() {
			format = "json"
		}
		logging.Init(config.Log.Level, format)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, config)
	},
}

type server struct {
	router  *gin.Engine
	views   *services.ViewService
	redis   *cache.RedisCache
	cleanup []func()
}

// newServer wires the view stack. Redis and Kafka are optional.
func newServer(ctx context.Context, config *configs.Config) (*server, error) {
	gin.SetMode(config.Server.Mode)
	s := &server{}

	m := metrics.NewMetrics()
	client := restaurantapi.NewClient(config.API.BaseURL, config.API.Timeout)
	restaurantService := services.NewRestaurantService(client, m)

	// Initialize view state repository
	var repo repositories.ViewStateRepository
	if config.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(ctx, config.Redis.URL, config.Redis.Password, config.Redis.DB)
		if err != nil {
			return nil, err
		}
		s.redis = redisCache
		s.cleanup = append(s.cleanup, func() { redisCache.Close() })
		repo = repositories.NewRedisViewStateRepository(redisCache, config.Session.TTL)
	} else {
		logging.Component("server").Info("REDIS_URL not set, keeping view state in memory")
		repo = repositories.NewMemoryViewStateRepository(config.Session.TTL)
	}

	// Initialize Kafka
	publisher := messaging.NewEventPublisher(config.Kafka.Brokers, config.Kafka.Topic)
	s.cleanup = append(s.cleanup, func() { publisher.Close() })

	s.views = services.NewViewService(restaurantService, repo, publisher, m, services.ViewSettings{
		InitialPageSize: config.View.InitialPageSize,
		PageStep:        config.View.PageStep,
		Cities:          config.View.Cities,
	})

	tmpl, err := handlers.Templates(client.BaseURL(), config.API.PictureSize)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware(m))

	// Health check endpoint
	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	sessions := router.Group("/", middleware.SessionMiddleware(config.Session.CookieName, config.Session.TTL))
	handlers.NewPageHandler(s.views).RegisterRoutes(sessions)

	// API routes
	api := sessions.Group("/api/v1")
	handlers.NewViewHandler(s.views).RegisterRoutes(api)
	handlers.NewRestaurantHandler(restaurantService, s.views).RegisterRoutes(api)

	s.router = router
	return s, nil
}

func (s *server) health(c *gin.Context) {
	store := "memory"
	if s.redis != nil {
		store = "redis"
		if err := s.redis.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "restaurant-explorer",
				"store":   store,
				"error":   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "restaurant-explorer",
		"store":           store,
		"active_sessions": s.views.ActiveSessions(),
	})
}

func (s *server) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

func runServer(ctx context.Context, config *configs.Config) error {
	s, err := newServer(ctx, config)
	if err != nil {
		return err
	}
	defer s.close()

	sweeper := services.NewSessionSweeper(s.views, config.Session.SweepInterval, config.Session.TTL)
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:              config.Server.Host + ":" + config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Component("server").WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Component("server").Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
