package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cardinal-portal/internal/config"
	apphttp "cardinal-portal/internal/http"
	"cardinal-portal/internal/repository/memory"
	"cardinal-portal/internal/repository/sqlite"
	"cardinal-portal/internal/service"
	"cardinal-portal/internal/token"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accountRepo := memory.NewAccountRepository()
	sessionRepo := memory.NewSessionRepository()

	accountService := service.NewAccountService(accountRepo, cfg.Auth.DefaultUser, cfg.Auth.DefaultPassword, logger)
	sessionService := service.NewSessionService(sessionRepo)
	portalService := service.NewPortalService(cfg.Data.Path)
	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	var audit *service.AuditRecorder
	if cfg.Audit.Enabled {
		db, err := sqlite.Open(cfg.Audit.Path)
		if err != nil {
			logger.Fatalf("open audit database: %v", err)
		}
		defer db.Close()

		auditRepo := sqlite.NewAuditRepository(db)
		if err := auditRepo.Init(ctx); err != nil {
			logger.Fatalf("init audit repository: %v", err)
		}
		audit = service.NewAuditRecorder(auditRepo, logger)
	}

	if err := accountService.Bootstrap(ctx); err != nil {
		logger.Fatalf("bootstrap default account: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(accountService, sessionService, portalService, tokens, audit)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
