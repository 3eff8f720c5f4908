package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	pkgconfig "inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/jwt"
	"inkwell/pkg/log"
)

func main() {
	configPath := pkgconfig.GetEnv("CONFIG_PATH", "config")

	cfg, err := config.Load(configPath)
	if err != nil {
		boot := log.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "inkwell",
	})
	logger := log.L()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	var profiles cache.ProfileCache = cache.Noop{}
	if cfg.Redis.Enabled {
		profiles, err = cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
	}

	tokens, err := jwt.NewManager(cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise token manager")
	}

	repos := repository.New(db)
	users := service.NewUserService(
		repos.Users, repos.Follows, tokens, profiles, cfg.Redis.TTL,
		cfg.Limits.DefaultBlogLimit, cfg.Limits.DefaultCommentLimit,
	)
	blogs := service.NewBlogService(repos.Blogs, repos.Tags, repos.Activity)
	search := service.NewSearchService(repos.Blogs)
	discovery := service.NewDiscoveryService(repos.Discovery)
	comments := service.NewCommentService(repos.Comments, repos.Blogs, repos.Activity)
	follows := service.NewFollowService(repos.Follows, repos.Users, profiles)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(log.GinMiddleware(logger), gin.Recovery())

	h := handler.New(users, blogs, search, discovery, comments, follows, tokens)
	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Expired token revocations accumulate in memory; sweep periodically.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			tokens.CleanupExpiredRevocations()
		}
	}()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
