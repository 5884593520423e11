package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-table-service/cmd/api/infrastructure"
	"user-table-service/internal/adapter/cache"
	"user-table-service/internal/adapter/db/sqlite"
	"user-table-service/internal/adapter/events"
	ginhandler "user-table-service/internal/adapter/gin/handler"
	ginrouter "user-table-service/internal/adapter/gin/router"
	"user-table-service/internal/adapter/repository/cached"
	"user-table-service/internal/adapter/repository/memory"
	"user-table-service/internal/adapter/web"
	"user-table-service/internal/config"
	domain "user-table-service/internal/domain/user"
	"user-table-service/internal/seed"
	"user-table-service/internal/usecase/user"
	redisclient "user-table-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Kafka       *kgo.Client
	UserRepo    user.Repository
	UserUC      user.Usecase
	GinHandler  *ginhandler.UserHandler
	UI          *web.UI
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (c *Container, err error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c = &Container{Config: cfg, Logger: l}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	repo, err := c.newStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := seedStore(ctx, cfg, repo, l); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)
	}
	c.UserRepo = repo

	var publisher user.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kc, err := infrastructure.NewKafkaProducer(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Kafka: %w", err)
		}
		c.Kafka = kc
		publisher = events.NewKafkaPublisher(kc, cfg.Kafka.Topic, cfg.Logger.ServiceName, l)
	}

	// Initialize use case
	c.UserUC = user.New(repo, publisher, l)

	// Initialize Gin handler and table UI
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.UI, err = web.NewUI(cfg.UI.Title, ginrouter.APIBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize UI: %w", err)
	}

	return c, nil
}

// newStore builds the record store selected by STORE_DRIVER
func (c *Container) newStore(ctx context.Context) (user.Repository, error) {
	switch c.Config.Store.Driver {
	case config.StoreSQLite:
		db, err := infrastructure.NewDatabase(c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		repo := sqlite.NewUserRepo(db, c.Logger)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repo, nil
	default:
		return memory.NewUserRepo(c.Logger), nil
	}
}

// seedStore inserts the demo users, then any generated ones
func seedStore(ctx context.Context, cfg *config.Config, repo user.Repository, l *zap.Logger) error {
	var users []domain.User
	if cfg.Store.SeedDemo {
		users = append(users, domain.DemoUsers()...)
	}
	if cfg.Store.FakeUsers > 0 {
		users = append(users, seed.FakeUsers(gofakeit.New(cfg.Store.FakeSeed), cfg.Store.FakeUsers)...)
	}
	if len(users) == 0 {
		return nil
	}

	n, err := seed.Insert(ctx, repo, users)
	if err != nil {
		return err
	}
	l.Info("store seeded",
		zap.Int("count", n),
		zap.Bool("demo", cfg.Store.SeedDemo),
		zap.Int("fake", cfg.Store.FakeUsers),
	)
	return nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Flush and close the Kafka producer
	if c.Kafka != nil {
		c.Kafka.Close()
		c.Kafka = nil
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.RedisClient = nil
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
		c.DB = nil
	}

	return errors.Join(errs...)
}
