package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/poyobook/poyobook/internal/api"
	"github.com/poyobook/poyobook/internal/api/handler"
	"github.com/poyobook/poyobook/internal/core/ports"
	"github.com/poyobook/poyobook/internal/core/service"
	"github.com/poyobook/poyobook/internal/infrastructure/captcha"
	gormdb "github.com/poyobook/poyobook/internal/infrastructure/db/gorm"
	"github.com/poyobook/poyobook/internal/infrastructure/db/redis"
	"github.com/poyobook/poyobook/internal/infrastructure/mail"
	"github.com/poyobook/poyobook/internal/infrastructure/queue"
	"github.com/poyobook/poyobook/internal/infrastructure/storage"
	"github.com/poyobook/poyobook/internal/pkg/config"
	"github.com/poyobook/poyobook/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("AUTH_SECRET must be set")
	}

	db, err := gormdb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	images, err := storage.NewImageStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("image store init failed")
	}

	// Challenge store: process-local by default, redis when configured.
	var challenges ports.ChallengeStore
	var rdb *goredis.Client
	if cfg.CaptchaBackend == "redis" {
		rdb, err = redis.Connect(context.Background(), redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis init failed")
		}
		challenges = redis.NewChallengeStore(rdb)
	} else {
		challenges = captcha.NewMemoryStore()
	}

	mailer := mail.NewMailer(mail.Config{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Address:   cfg.Mail.Address,
		Password:  cfg.Mail.Password,
		Alias:     cfg.Mail.Alias,
		CleanHost: cfg.CleanHost,
	})
	mailQueue := queue.NewDispatcher(0, mailer, log)
	mailQueue.Start(context.Background())

	userRepo := gormdb.NewUserRepository(db)
	boardRepo := gormdb.NewBoardRepository(db)
	entryRepo := gormdb.NewEntryRepository(db)

	codec := service.NewTokenCodec(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, codec, mailQueue, cfg.MaxUsers, cfg.CleanHost, log)
	boardService := service.NewBoardService(boardRepo, entryRepo, userRepo, cfg.CleanHost, log)
	captchaService := service.NewCaptchaService(challenges)
	entryService := service.NewEntryService(entryRepo, boardRepo, captchaService, images, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		BoardService:   boardService,
		EntryService:   entryService,
		CaptchaService: captchaService,
		Readiness:      handler.NewReadinessHandler(db, rdb),
		ApexHost:       cfg.Host,
		Logger:         log,
	})

	log.Info().Str("port", cfg.Port).Str("apex", cfg.CleanHost).Msg("poyobook starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
