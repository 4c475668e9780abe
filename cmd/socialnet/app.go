package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/social-network/internal/core/service"
	mongodb "github.com/99minutos/social-network/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/social-network/internal/infrastructure/db/redis"
	"github.com/99minutos/social-network/pkg/logger"
)

// app holds the single database handle and the services built on it.
type app struct {
	mongo *mongo.Client
	redis *redis.Client

	accountRepo *mongodb.AccountRepository

	auth          *service.AuthService
	accounts      *service.AccountService
	posts         *service.PostService
	relationships *service.RelationshipService
}

// newApp connects to MongoDB and, when withRedis is set, to Redis. A Redis
// failure is logged and login throttling is disabled.
func newApp(ctx context.Context, withRedis bool) (*app, error) {
	log := logger.Get()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "socialnet",
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	a := &app{mongo: client}

	var limiter service.LoginLimiter
	if withRedis {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, login throttling disabled")
		} else {
			a.redis = rdb
			limiter = redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		}
	}

	accountRepo := mongodb.NewAccountRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	relRepo := mongodb.NewRelationshipRepository(db, cfg.Mongo.Transactions)
	if cfg.Mongo.Transactions {
		log.Info().Msg("relationship writes use multi-document transactions")
	} else {
		log.Info().Msg("relationship writes run without transactions, use the repair command to reconcile")
	}

	a.accountRepo = accountRepo
	a.auth = service.NewAuthService(accountRepo, limiter, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	a.accounts = service.NewAccountService(accountRepo, log)
	a.posts = service.NewPostService(postRepo, accountRepo, log)
	a.relationships = service.NewRelationshipService(accountRepo, relRepo, log)
	return a, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.redis != nil {
		_ = a.redis.Close()
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("mongodb disconnect")
	}
}
