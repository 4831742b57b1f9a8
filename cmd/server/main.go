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

	"github.com/rs/zerolog"

	"github.com/tavolo/ordering-gateway/internal/api"
	"github.com/tavolo/ordering-gateway/internal/api/middleware"
	"github.com/tavolo/ordering-gateway/internal/core/service"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/backend"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/config"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/imagesearch"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/mail"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/payment"
	"github.com/tavolo/ordering-gateway/internal/infrastructure/store"
	"github.com/tavolo/ordering-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Session and draft storage ---
	rdb, err := store.Connect(ctx, store.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("close redis failed")
		}
	}()
	sessionStore := store.NewSessionStore(rdb, cfg.Redis.SessionTTL)
	draftStore := store.NewDraftStore(rdb, cfg.Redis.DraftTTL)

	// --- Restaurant backend gateways ---
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	authGateway := backend.NewAuthGateway(backendClient)
	menuGateway := backend.NewMenuItemGateway(backendClient)
	orderGateway := backend.NewOrderGateway(backendClient)
	userGateway := backend.NewUserGateway(backendClient)
	roleGateway := backend.NewRoleGateway(backendClient)
	customerGateway := backend.NewCustomerGateway(backendClient)

	// --- Collaborators ---
	imageSearcher := imagesearch.New(
		cfg.ImageSearch.Endpoint,
		cfg.ImageSearch.AccessKey,
		cfg.ImageSearch.PerPage,
		cfg.ImageSearch.Timeout,
		log,
	)
	mailClient := mail.NewClient(
		cfg.Mail.Endpoint,
		cfg.Mail.ServiceID,
		cfg.Mail.TemplateID,
		cfg.Mail.PublicKey,
		cfg.Mail.Timeout,
		log,
	)
	mailDispatcher := mail.NewDispatcher(cfg.Mail.Workers, mailClient, log)
	mailDispatcher.Start(ctx)
	paymentSimulator := payment.NewSimulator(cfg.Payment.Delay)

	// --- Core services ---
	sessions := service.NewSessionService(authGateway, sessionStore, log)
	resolver := service.NewRouteResolver()
	composer := service.NewComposerService(
		draftStore,
		menuGateway,
		orderGateway,
		paymentSimulator,
		mailDispatcher,
		sessions,
		service.ComposerOptions{RejectZeroTotal: cfg.Order.RejectZeroTotal},
		log,
	)

	loginLimiter := middleware.NewLoginRateLimiter(cfg.Login.RatePerMinute, cfg.Login.RateBurst)
	defer loginLimiter.Stop()

	e := api.NewRouter(api.Dependencies{
		Sessions:     sessions,
		Composer:     composer,
		Resolver:     resolver,
		Menu:         menuGateway,
		Orders:       orderGateway,
		Users:        userGateway,
		Roles:        roleGateway,
		Customers:    customerGateway,
		Images:       imageSearcher,
		Redis:        rdb,
		LoginLimiter: loginLimiter,
		Logger:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("ordering gateway listening")
		if serr := e.Start(":" + cfg.Port); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
