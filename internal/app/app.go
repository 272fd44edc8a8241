package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"livestock-invest-go/internal/auth"
	"livestock-invest-go/internal/config"
	"livestock-invest-go/internal/db"
	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	dashboarddomain "livestock-invest-go/internal/domain/dashboard"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	riskdomain "livestock-invest-go/internal/domain/risk"
	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/internal/integrations/openai"
	"livestock-invest-go/internal/metrics"
	"livestock-invest-go/internal/repository/inmemory"
	cyclesrepo "livestock-invest-go/internal/repository/postgres/cycles"
	investmentsrepo "livestock-invest-go/internal/repository/postgres/investments"
	usersrepo "livestock-invest-go/internal/repository/postgres/users"
	redisrepo "livestock-invest-go/internal/repository/redis"
	"livestock-invest-go/internal/transport/httpserver"
	"livestock-invest-go/internal/transport/httpserver/handler"
	accountshandler "livestock-invest-go/internal/transport/httpserver/handler/accounts"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	cycleshandler "livestock-invest-go/internal/transport/httpserver/handler/cycles"
	investmentshandler "livestock-invest-go/internal/transport/httpserver/handler/investments"
	authmw "livestock-invest-go/internal/transport/httpserver/middleware"
	"livestock-invest-go/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	risk       *riskdomain.Service
	log        logger.Logger
}

type repositories struct {
	users       usersdomain.Repository
	cycles      cyclesdomain.Repository
	investments investmentsdomain.Repository
}

type services struct {
	users       *usersdomain.Service
	cycles      *cyclesdomain.Service
	investments *investmentsdomain.Service
	dashboards  *dashboarddomain.Service
	risk        *riskdomain.Service
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	log.Info("app: initializing storage", "storage", cfg.Storage)
	repos, err := a.initStorage()
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing risk summaries")
	riskCache, err := a.initRiskCache()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.risk = riskdomain.NewService(newSummarizer(cfg.Risk, log), riskCache, riskdomain.Config{
		Timeout:  cfg.Risk.Timeout,
		CacheTTL: cfg.Risk.CacheTTL,
	}, log.With("component", "risk"))

	tokens, err := newTokens(cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		a.risk.SetObserver(m)
	}

	log.Info("app: initializing router")
	router := buildRouter(cfg, newServices(repos, a.risk), tokens, m, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Close waits for in-flight risk warm-ups, then releases connections.
func (a *App) Close() error {
	if a.risk != nil {
		a.risk.Wait()
	}

	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = fmt.Errorf("close redis: %w", err)
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close db: %w", err)
		}
	}
	return firstErr
}

func (a *App) initStorage() (repositories, error) {
	if a.cfg.Storage == config.StoragePostgres {
		dbConn, err := db.NewPostgres(a.cfg.DB, a.log)
		if err != nil {
			return repositories{}, err
		}
		a.db = dbConn

		if err := db.Migrate(dbConn, a.log); err != nil {
			_ = a.Close()
			return repositories{}, err
		}

		return repositories{
			users:       usersrepo.NewPostgres(dbConn),
			cycles:      cyclesrepo.NewPostgres(dbConn),
			investments: investmentsrepo.NewPostgres(dbConn),
		}, nil
	}

	store := inmemory.NewStore()
	if a.cfg.SeedDemoData {
		store.SeedDemo(time.Now().UTC())
		a.log.Info("app: demo data seeded",
			"admin_phone", inmemory.DemoAdminPhone,
			"breeder_phone", inmemory.DemoBreederPhone,
			"investor_phone", inmemory.DemoInvestorPhone,
		)
	}
	return memoryRepositories(store), nil
}

func (a *App) initRiskCache() (riskdomain.Cache, error) {
	if a.cfg.Redis.Addr == "" {
		return inmemory.NewRiskSummaryCache(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redisrepo.NewClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = client
	return redisrepo.NewRiskSummaryCache(client, a.log), nil
}

func memoryRepositories(store *inmemory.Store) repositories {
	return repositories{
		users:       store.Users(),
		cycles:      store.Cycles(),
		investments: store.Investments(),
	}
}

// newSummarizer returns nil when no API key is configured; the risk service
// then serves the fallback text.
func newSummarizer(cfg config.RiskConfig, log logger.Logger) riskdomain.Summarizer {
	client, err := openai.NewClient(openai.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		log.Warn("app: risk summaries use fallback text", "reason", err.Error())
		return nil
	}
	return riskdomain.NewChatSummarizer(client)
}

func newTokens(cfg config.Config, log logger.Logger) (*auth.Tokens, error) {
	secret := cfg.Auth.TokenSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		log.Warn("app: AUTH_TOKEN_SECRET not set, tokens will not survive a restart")
	}
	return auth.NewTokens(secret, cfg.Auth.TokenTTL)
}

func newServices(repos repositories, risk *riskdomain.Service) services {
	users := usersdomain.NewService(repos.users)
	cycles := cyclesdomain.NewService(repos.cycles, users, risk)
	investments := investmentsdomain.NewService(repos.investments, users)
	return services{
		users:       users,
		cycles:      cycles,
		investments: investments,
		dashboards:  dashboarddomain.NewService(users, cycles, investments),
		risk:        risk,
	}
}

func buildRouter(cfg config.Config, svc services, tokens *auth.Tokens, m *metrics.Metrics, log logger.Logger) http.Handler {
	var recorder commonhandler.Recorder = commonhandler.NopRecorder{}
	if m != nil {
		recorder = m
	}

	handlers := handler.New(
		commonhandler.New(log),
		accountshandler.New(svc.users, svc.dashboards, tokens, recorder, log),
		cycleshandler.New(svc.cycles, svc.risk, recorder, log),
		investmentshandler.New(svc.investments, svc.cycles, svc.users, recorder, log),
	)
	tokenAuth := authmw.NewTokenAuth(tokens, svc.users, log)
	return httpserver.NewRouter(cfg, handlers, tokenAuth, m, log)
}
