package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flagarena/internal/cache"
	"flagarena/internal/config"
	"flagarena/internal/repository"
	"flagarena/internal/service"
	"flagarena/internal/transport/rest"
	"flagarena/internal/transport/ws"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	logger.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Solve uniqueness lives in this index; refuse to start without it
	if err := repository.EnsureSolveIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create solve indexes:", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	logger.Info("connected to Redis")

	// Solve feed hub
	hub := ws.NewHub(logger)

	// Repositories
	contestRepo := repository.NewContestRepo(db)
	challengeRepo := repository.NewChallengeRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	hintRepo := repository.NewHintRepo(db)
	solveRepo := repository.NewSolveRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	txnRunner := repository.NewTxnRunner(mongoClient)

	// Caches
	rankCounter := cache.NewRankCounter(rdb, cfg.CounterTTL)
	board := cache.NewLeaderboardCache(rdb, cfg.LeaderboardTTL)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	verifier := service.NewVerifier(cfg.FlagSecret)
	judgeSvc := service.NewJudgeService(
		contestRepo, challengeRepo, teamRepo, hintRepo,
		solveRepo, submissionRepo, txnRunner,
		rankCounter, board, verifier, logger, cfg.RankFallback,
	)
	judgeSvc.SetBroadcaster(hub)
	leaderboardSvc := service.NewLeaderboardService(contestRepo, solveRepo, teamRepo, board, logger)

	container := &rest.Container{
		AuthService:        authSvc,
		JudgeService:       judgeSvc,
		LeaderboardService: leaderboardSvc,
		SubmissionRepo:     submissionRepo,
		WSHandler:          ws.NewHandler(hub, authSvc, logger),
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort, "rankFallback", cfg.RankFallback)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("server exited")
}
