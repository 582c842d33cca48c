package handler

import (
	"secure-acceptance-gateway/internal/adapter/http/middleware"
	redisStore "secure-acceptance-gateway/internal/adapter/storage/redis"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every request body, gateway form posts included.
const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	ProfileSvc     ports.ProfileService
	LedgerSvc      ports.LedgerService
	CheckoutSvc    ports.CheckoutService
	ReplySvc       ports.ReplyService
	DecisionSvc    ports.DecisionManagerService
	PaymentStates  ports.PaymentStateStore
	Fingerprint    FingerprintURLs
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	MetricsEnabled bool
	Mode           string // gin mode, release when empty
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Processor and browser callbacks ---
	gatewayHandler := NewGatewayHandler(deps.ReplySvc, deps.DecisionSvc, deps.Fingerprint)
	cs := r.Group("/cybersource")
	{
		cs.POST("/reply", rl("reply"), gatewayHandler.Reply)
		cs.POST("/decision-manager-review-notification", rl("decision_manager"), gatewayHandler.DecisionManagerNotification)
		cs.GET("/fingerprint/:url_type", rl("fingerprint"), gatewayHandler.Fingerprint)
	}

	v1 := r.Group("/api/v1")

	// --- Storefront checkout (session cookie) ---
	checkoutHandler := NewCheckoutHandler(deps.CheckoutSvc, deps.ReplySvc, deps.PaymentStates)
	checkout := v1.Group("/checkout", middleware.CheckoutSession(), rl("checkout"))
	{
		checkout.POST("/:number/secure-acceptance", checkoutHandler.StartSecureAcceptance)
		checkout.POST("/:number/payment-token", checkoutHandler.CreatePaymentToken)
		checkout.GET("/payment-states/:method", checkoutHandler.PaymentState)
	}

	// --- Back office (JWT) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/admin/login", rl("admin_login"), authHandler.Login)

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	profileHandler := NewProfileHandler(deps.ProfileSvc)
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	admin := v1.Group("/admin", jwtAuth, rl("admin"))
	{
		admin.GET("/profiles", profileHandler.List)
		admin.POST("/profiles", profileHandler.Create)
		admin.PUT("/profiles/:id/default", profileHandler.SetDefault)
		admin.DELETE("/profiles/:id", profileHandler.Delete)

		admin.GET("/orders/:number/transactions", ledgerHandler.ListOrderTransactions)
		admin.POST("/transactions/:id/capture", ledgerHandler.Capture)
		admin.GET("/tokens/:id", ledgerHandler.TokenDetails)
	}

	return r
}
