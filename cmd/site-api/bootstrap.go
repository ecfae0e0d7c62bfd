package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FocusWW/SiteAPI/config"
	"github.com/FocusWW/SiteAPI/internal/api/siteapi"
	"github.com/FocusWW/SiteAPI/internal/broker/kafka"
	"github.com/FocusWW/SiteAPI/internal/cache"
	"github.com/FocusWW/SiteAPI/internal/cache/rediscache"
	"github.com/FocusWW/SiteAPI/internal/integrations/assistant"
	"github.com/FocusWW/SiteAPI/internal/integrations/assistant/openaihttp"
	"github.com/FocusWW/SiteAPI/internal/integrations/cases"
	"github.com/FocusWW/SiteAPI/internal/integrations/cases/fake"
	"github.com/FocusWW/SiteAPI/internal/services/chat"
	"github.com/FocusWW/SiteAPI/internal/services/tracking"
	"github.com/FocusWW/SiteAPI/internal/storage/pgcases"
)

type siteAPIApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   siteAPIOpts
	api    *siteapi.SiteAPI

	closers []func()
}

func mustBootstrapSiteAPI() *siteAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.Site.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	app := &siteAPIApp{
		opts: siteAPIOpts{
			httpAddr:    httpAddr,
			swaggerPath: os.Getenv("swaggerPath"),
		},
	}

	// Провайдер кейсов: Postgres, если сконфигурирован, иначе
	// детерминированная заглушка.
	var provider cases.Lookup = fake.New()
	if cfg.Database.Host != "" {
		sslMode := cfg.Database.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, sslMode)
		st := mustOpenPostgresWithRetry(connString, 60*time.Second)
		app.closers = append(app.closers, st.Close)
		provider = st
	}

	// Redis необязателен: без него нет кэша и лимитера, но сервис жив.
	var caseCache *rediscache.RedisCache
	var limiter *rediscache.RateLimiter
	if cfg.Redis.Host != "" {
		redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		caseCache = rediscache.New(redisAddr)
		limiter = rediscache.NewRateLimiter(redisAddr)
	}

	caseTTL := time.Duration(cfg.Site.CaseCacheTTLSeconds) * time.Second
	if caseTTL <= 0 {
		caseTTL = 5 * time.Minute
	}

	var producer *kafka.Producer
	chatTopic := cfg.Kafka.ChatAuditTopicName
	trackingTopic := cfg.Kafka.TrackingAuditTopicName
	if cfg.Kafka.Host != "" {
		brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
		producer = kafka.NewProducer(brokers)
		app.closers = append(app.closers, func() { _ = producer.Close() })
		if chatTopic == "" {
			chatTopic = "site.chat.audit"
		}
		if trackingTopic == "" {
			trackingTopic = "site.tracking.audit"
		}
	}

	// Неполная конфигурация провайдера — режим заготовленных ответов.
	var ai assistant.Client
	if cfg.Assistant.Endpoint != "" && cfg.Assistant.APIKey != "" {
		ai = openaihttp.New(cfg.Assistant.Endpoint, cfg.Assistant.APIKey, cfg.Assistant.Deployment)
	}

	// Типизированный nil в интерфейсном параметре не равен nil,
	// поэтому необязательные зависимости подставляются явно.
	var caseBytes cache.BytesCache
	if caseCache != nil {
		caseBytes = caseCache
	}
	var trackingProducer tracking.Producer
	var chatProducer chat.Producer
	if producer != nil {
		trackingProducer = producer
		chatProducer = producer
	}

	trackingSvc := tracking.New(provider, caseBytes, caseTTL, trackingProducer, trackingTopic)
	chatSvc := chat.New(ai, chatProducer, chatTopic)

	api := siteapi.New(chatSvc, trackingSvc)
	if limiter != nil && cfg.Site.ChatRateLimitPerMinute > 0 {
		api = api.WithChatRateLimit(limiter, cfg.Site.ChatRateLimitPerMinute)
	}

	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app.api = api
	return app
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgcases.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgcases.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *siteAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for _, close := range a.closers {
		close()
	}
}

func (a *siteAPIApp) Run() error {
	return runSiteAPI(a.ctx, a.opts, a.api)
}
