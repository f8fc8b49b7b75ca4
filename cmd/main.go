package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	internalhttp "github.com/devconnect/devconnect-backend/internal/http"
	"github.com/devconnect/devconnect-backend/internal/http/handlers"
	"github.com/devconnect/devconnect-backend/internal/http/middleware"
	"github.com/devconnect/devconnect-backend/internal/platform/envutil"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/platform/mongodb"
	"github.com/devconnect/devconnect-backend/internal/platform/redisdb"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/store/mongostore"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	port := envutil.String("PORT", "8080")
	mongoURI := envutil.String("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := envutil.String("MONGO_DB", "devconnect")
	redisAddr := envutil.String("REDIS_ADDR", "")
	jwtSecret := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	accessTTL := time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second
	githubToken := envutil.String("GITHUB_TOKEN", "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Connecting to mongo...")
	client, err := mongodb.Connect(ctx, mongoURI)
	if err != nil {
		log.Fatal("Mongo connect failed", "error", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	mongoStore := mongostore.New(client.Database(mongoDB), log)

	var profileCache services.ProfileCache
	if redisAddr != "" {
		rdb, err := redisdb.NewClient(ctx, redisAddr)
		if err != nil {
			log.Warn("Redis unavailable, profile directory cache disabled", "error", err)
		} else {
			defer rdb.Close()
			profileCache = redisdb.NewProfileDirectoryCache(rdb, log, time.Minute)
		}
	}

	authService := services.NewAuthService(log, mongoStore.Users(), jwtSecret, accessTTL)
	postService := services.NewPostService(log, mongoStore.Posts(), mongoStore.Users())
	profileService := services.NewProfileService(log, mongoStore.Profiles(), mongoStore.Posts(), mongoStore.Users(), profileCache)
	githubService := services.NewGithubService(log, githubToken)

	server := internalhttp.NewServer(internalhttp.RouterConfig{
		AuthHandler:    handlers.NewAuthHandler(authService),
		AuthMiddleware: middleware.NewAuthMiddleware(log, authService),
		PostHandler:    handlers.NewPostHandler(postService),
		ProfileHandler: handlers.NewProfileHandler(profileService, githubService),
		HealthHandler:  handlers.NewHealthHandler(),
	})

	httpServer := &http.Server{Addr: ":" + port, Handler: server.Engine}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal("Server exited", "error", err)
	}
	log.Info("Server stopped")
}
