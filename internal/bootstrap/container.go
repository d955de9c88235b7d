package bootstrap

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/taskmgr-io/taskmgr/internal/config"
	"github.com/taskmgr-io/taskmgr/internal/infra/cache"
	"github.com/taskmgr-io/taskmgr/internal/infra/db"
	"github.com/taskmgr-io/taskmgr/internal/infra/logger"
	"github.com/taskmgr-io/taskmgr/internal/modules/handler"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
	"github.com/taskmgr-io/taskmgr/internal/pkg/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.Task{},
				&model.Comment{},
				&model.History{},
				&model.Notification{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.StatsCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(cfg.Redis.StatsTTLSec) * time.Second
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		return cache.NewStatsCache(rdb, ttl), nil
	})

	// Auth primitives
	do.Provide(inj, func(i *do.Injector) (*auth.TokenManager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
		return auth.NewTokenManager(cfg.Auth.JWTSecret, ttl), nil
	})
	do.Provide(inj, func(i *do.Injector) (*auth.PasswordHasher, error) {
		return auth.NewPasswordHasher(), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CommentRepo, error) {
		return repo.NewCommentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.HistoryRepo, error) {
		return repo.NewHistoryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*auth.PasswordHasher](i),
			do.MustInvoke[*auth.TokenManager](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.HistoryRepo](i),
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[*cache.StatsCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CommentService, error) {
		return service.NewCommentService(
			do.MustInvoke[repo.CommentRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.HistoryRepo](i),
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.HistoryService, error) {
		return service.NewHistoryService(do.MustInvoke[repo.HistoryRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(do.MustInvoke[repo.NotificationRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReportService, error) {
		return service.NewReportService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.UserRepo](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CommentHandler, error) {
		return handler.NewCommentHandler(do.MustInvoke[service.CommentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.HistoryHandler, error) {
		return handler.NewHistoryHandler(do.MustInvoke[service.HistoryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SearchHandler, error) {
		return handler.NewSearchHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReportHandler, error) {
		return handler.NewReportHandler(do.MustInvoke[service.ReportService](i)), nil
	})

	return inj
}
