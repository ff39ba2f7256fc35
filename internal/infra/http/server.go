package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"signet/internal/config"
	"signet/internal/domain"
	"signet/internal/infra/credentials"
	"signet/internal/infra/crypto"
	"signet/internal/infra/db"
	"signet/internal/infra/keys"
	"signet/internal/infra/policyopa"
	"signet/internal/infra/ratelimit"
	"signet/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg   config.Config
	store *db.Store
	r     *gin.Engine

	provisionUC *usecase.ProvisionIdentity
	signUC      *usecase.SignText
	verifyUC    *usecase.VerifySignature
	listUC      *usecase.ListSignatures

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r}
	s.initDeps()
	s.routes()
	return s
}

type ServerDeps struct {
	Provision   *usecase.ProvisionIdentity
	Sign        *usecase.SignText
	Verify      *usecase.VerifySignature
	List        *usecase.ListSignatures
	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:         cfg,
		r:           r,
		provisionUC: deps.Provision,
		signUC:      deps.Sign,
		verifyUC:    deps.Verify,
		listUC:      deps.List,
	}
	s.initRateLimit(deps.RateLimiter)
	s.routes()
	return s
}

func (s *Server) initDeps() {
	cryptoSvc := &crypto.Service{}
	provisioner := keys.NewProvisioner()
	hasher := credentials.BcryptHasher{Cost: s.cfg.BcryptCost}

	var policy usecase.PolicyEngine
	if s.cfg.PolicyPath != "" {
		engine, err := policyopa.NewEngineFromFile(context.Background(), s.cfg.PolicyPath)
		if err != nil {
			log.Printf("request policy disabled: %v", err)
		} else {
			policy = engine
		}
	}

	if s.store != nil && s.store.DB != nil {
		identityRepo := db.NewIdentityRepository(s.store.DB)
		signatureRepo := db.NewSignatureRepository(s.store.DB)
		auditRepo := db.NewVerificationLogRepository(s.store.DB)

		s.provisionUC = &usecase.ProvisionIdentity{
			Identities: identityRepo,
			Keys:       provisioner,
			Hasher:     hasher,
			Policy:     policy,
		}
		s.signUC = &usecase.SignText{
			Identities: identityRepo,
			Signatures: signatureRepo,
			Crypto:     cryptoSvc,
			Policy:     policy,
			NewID:      db.NewUUID,
		}
		s.verifyUC = &usecase.VerifySignature{
			Signatures: signatureRepo,
			Identities: identityRepo,
			Crypto:     cryptoSvc,
			Audit:      auditRepo,
		}
		s.listUC = &usecase.ListSignatures{
			Identities: identityRepo,
			Signatures: signatureRepo,
			Hasher:     hasher,
			PrefixLen:  s.cfg.TextPrefixLen,
		}
	}

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	s.rateLimitRequests = s.cfg.RateLimitRequests
	s.rateLimitWindow = s.cfg.RateLimitWindow()
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed

	if override != nil {
		s.rateLimiter = override
		return
	}
	if s.rateLimitRequests <= 0 {
		return
	}
	if s.cfg.RedisAddr != "" {
		limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil)
		if err == nil {
			s.rateLimiter = limiter
			return
		}
		log.Printf("redis rate limiter unavailable, using memory limiter: %v", err)
	}
	s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{MaxKeys: s.cfg.RateLimitMaxKeys})
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.rateLimiter == nil || s.rateLimitRequests <= 0 {
			c.Next()
			return
		}
		key := "verify|" + c.ClientIP()
		decision, err := s.rateLimiter.Allow(c.Request.Context(), key, s.rateLimitRequests, s.rateLimitWindow)
		if err != nil {
			if s.rateLimitFailClosed {
				writeErrorCode(c, http.StatusServiceUnavailable, "RATE_LIMIT_UNAVAILABLE", "rate limiter unavailable")
				c.Abort()
				return
			}
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		mode := "no-db"
		if s.store != nil && s.store.DB != nil {
			mode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	v1 := s.r.Group("/v1")
	{
		v1.POST("/identities", s.handleCreateIdentity)
		v1.POST("/signatures", s.handleSign)
		v1.GET("/signatures/:signature_id/verification", s.rateLimit(), s.handleVerify)
		v1.POST("/signatures/list", s.handleListSignatures)
	}
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
