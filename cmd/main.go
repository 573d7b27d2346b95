package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/blogapi/internal/api/http/context"
	"github.com/dtroode/blogapi/internal/api/http/handler"
	"github.com/dtroode/blogapi/internal/api/http/middleware"
	"github.com/dtroode/blogapi/internal/api/http/router"
	httpserver "github.com/dtroode/blogapi/internal/api/http/server"
	"github.com/dtroode/blogapi/internal/config"
	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/mailer"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/repository/postgres"
	"github.com/dtroode/blogapi/internal/server"
	"github.com/dtroode/blogapi/internal/service"
	storage "github.com/dtroode/blogapi/internal/storage/minio"
	"github.com/dtroode/blogapi/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpireDays)
	smtpMailer := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, tokenManager, smtpMailer, logger)
	postService := service.NewPost(postRepo, storageClient, logger)
	commentService := service.NewComment(commentRepo, postRepo, logger)
	userService := service.NewUser(userRepo, logger)

	ctxMgr := httpctx.NewManager()
	cookie := handler.CookieOptions{
		ExpireDays: cfg.JWT.CookieExpireDays,
		Secure:     cfg.Production(),
	}

	apiRouter := router.New(router.Config{
		Auth:           handler.NewAuth(authService, ctxMgr, cookie, logger),
		Post:           handler.NewPost(postService, ctxMgr, logger),
		Comment:        handler.NewComment(commentService, ctxMgr, logger),
		User:           handler.NewUser(userService, authService, logger),
		Authenticate:   middleware.NewAuthenticate(tokenManager, userRepo, ctxMgr, logger),
		Logging:        middleware.NewLogging(logger),
		ContextManager: ctxMgr,
	})

	apiServer := httpserver.NewHTTPServer(fmt.Sprintf(":%s", cfg.HTTP.Port), apiRouter, logger)

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
