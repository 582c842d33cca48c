package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/adapter/soap"
	pgStorage "secure-acceptance-gateway/internal/adapter/storage/postgres"
	redisStorage "secure-acceptance-gateway/internal/adapter/storage/redis"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/internal/service"
	"secure-acceptance-gateway/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	notifyTimeout     = 10 * time.Second
	auditDrainTimeout = 5 * time.Second
)

// app holds the wired services shared by the commands.
type app struct {
	cfg  *config.Holder
	log  zerolog.Logger
	pool *pgxpool.Pool
	rdb  *goredis.Client

	tokenSvc      ports.TokenService
	authSvc       ports.AuthService
	auditSvc      *service.AuditTrail
	profileSvc    *service.ProfileServiceImpl
	ledgerSvc     ports.LedgerService
	checkoutSvc   ports.CheckoutService
	replySvc      ports.ReplyService
	decisionSvc   ports.DecisionManagerService
	maintenance   *service.MaintenanceService
	fingerprint   *service.Fingerprint
	paymentStates *redisStorage.PaymentStateStore
	rateLimits    *redisStorage.RateLimitStore
	health        []ports.HealthChecker
}

func (a *app) Close() {
	if a.auditSvc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), auditDrainTimeout)
		if err := a.auditSvc.Close(ctx); err != nil {
			a.log.Warn().Err(err).Msg("audit trail not fully flushed")
		}
		cancel()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// connectPostgres opens the pool only; used by commands that need no Redis.
func connectPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// buildApp connects the stores and wires every service.
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{cfg: config.NewHolder(cfg), log: log}

	pool, err := connectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.rdb = rdb

	// Repositories
	profileRepo := pgStorage.NewProfileRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	replyRepo := pgStorage.NewReplyRepo(pool)
	claimRepo := pgStorage.NewReplyClaimRepo(pool)
	tokenRepo := pgStorage.NewPaymentTokenRepo(pool)
	txnRepo := pgStorage.NewTransactionRepo(pool)
	sourceRepo := pgStorage.NewSourceRepo(pool)
	eventRepo := pgStorage.NewPaymentEventRepo(pool)
	notificationRepo := pgStorage.NewNotificationRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis stores
	replyCache := redisStorage.NewReplyOutcomeCache(rdb)
	nonceStore := redisStorage.NewUUIDReservations(rdb)
	a.paymentStates = redisStorage.NewPaymentStateStore(rdb, redisStorage.DefaultPaymentStateTTL)
	a.rateLimits = redisStorage.NewRateLimitStore(rdb)

	// Core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key, cfg.AES.PreviousKeys...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init encryption: %w", err)
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	a.tokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	a.auditSvc = service.NewAuditService(auditRepo, logger.Component(log, "audit"))
	a.authSvc = service.NewAuthService(service.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, hashSvc, a.tokenSvc, log)

	gateway := soap.NewClient(a.cfg, nil, logger.Component(log, "soap"))
	a.profileSvc = service.NewProfileService(profileRepo, transactor, encSvc, a.cfg, log)
	checkoutStates := service.NewCheckoutStateService(a.paymentStates, orderRepo, log)
	builder := service.NewRequestBuilder(a.profileSvc, sigSvc, encSvc, nonceStore, a.cfg, log)
	a.checkoutSvc = service.NewCheckoutService(orderRepo, a.paymentStates, builder, log)

	a.ledgerSvc = service.NewLedgerService(service.LedgerDeps{
		Tokens:     tokenRepo,
		Txns:       txnRepo,
		Sources:    sourceRepo,
		Orders:     orderRepo,
		Events:     eventRepo,
		Replies:    replyRepo,
		Gateway:    gateway,
		Checkout:   checkoutStates,
		Transactor: transactor,
		Config:     a.cfg,
		Logger:     logger.Component(log, "ledger"),
	})
	a.replySvc = service.NewReplyService(service.ReplyDeps{
		Resolver:   a.profileSvc,
		Signer:     sigSvc,
		Encryption: encSvc,
		Orders:     orderRepo,
		Replies:    replyRepo,
		Claims:     claimRepo,
		Ledger:     a.ledgerSvc,
		Checkout:   checkoutStates,
		Gateway:    gateway,
		Cache:      replyCache,
		Audit:      a.auditSvc,
		Transactor: transactor,
		Config:     a.cfg,
		Logger:     logger.Component(log, "reply"),
	})

	notifier := service.NewWebhookNotifier(notificationRepo, &http.Client{Timeout: notifyTimeout}, a.cfg, logger.Component(log, "notifier"))
	a.decisionSvc = service.NewDecisionManagerService(orderRepo, txnRepo, transactor, notifier, a.auditSvc, a.cfg, logger.Component(log, "decision_manager"))
	a.maintenance = service.NewMaintenanceService(replyRepo, a.profileSvc, a.cfg, log)
	a.fingerprint = service.NewFingerprint(a.cfg)

	a.health = []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)}
	return a, nil
}
