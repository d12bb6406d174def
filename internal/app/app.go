package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/habitus-app/habitus-api/internal/adapter/http"
	"github.com/habitus-app/habitus-api/internal/adapter/memory"
	"github.com/habitus-app/habitus-api/internal/app/habit"
	"github.com/habitus-app/habitus-api/internal/app/seed"
	"github.com/habitus-app/habitus-api/internal/infra/metrics"
	"github.com/habitus-app/habitus-api/internal/infra/middleware"
	"github.com/habitus-app/habitus-api/pkg/cache"
	"github.com/habitus-app/habitus-api/pkg/config"
	"github.com/habitus-app/habitus-api/pkg/ratelimit"
	"go.uber.org/zap"
)

// App agrega todas as dependências da aplicação
type App struct {
	Logger        *zap.Logger
	Config        *config.Config
	Repository    *memory.HabitRepository
	HabitService  *habit.Service
	HabitHandler  *http.HabitHandler
	HealthChecker *http.HealthChecker
	Middleware    *middleware.Middleware
	Cache         cache.Cache
	APIMetrics    *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(logger *zap.Logger) (*App, error) {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	// Inicializar métricas
	apiMetrics := metrics.NewAPIMetrics()

	// Inicializar cache conforme a configuração
	appCache := newCache(cfg, apiMetrics, logger)

	// O repositório em memória é construído uma única vez e injetado;
	// ele vive pelo tempo de vida do processo
	repo := memory.NewHabitRepository(logger)

	// Inicializar o serviço de hábitos
	habitService := habit.NewService(repo, appCache, cfg.Habits, logger)
	habitService.SetMetrics(apiMetrics)
	habitService.SetCacheTTL(cfg.Cache.TTL)

	// Inicializar handlers HTTP
	habitHandler := http.NewHabitHandler(habitService, logger)
	habitHandler.SetMetrics(apiMetrics)

	healthChecker := http.NewHealthChecker(repo, appCache, logger)

	// Carregar hábitos iniciais, se configurado
	if cfg.Habits.SeedFile != "" {
		if err := seed.LoadAndCreateHabits(context.Background(), habitService, cfg.Habits.SeedFile, logger); err != nil {
			return nil, fmt.Errorf("erro ao carregar hábitos iniciais: %w", err)
		}
		logger.Info("Hábitos iniciais carregados", zap.String("arquivo", cfg.Habits.SeedFile))
	}

	// Inicializar middlewares
	middlewares := middleware.NewMiddleware(logger, apiMetrics, cfg.Tracing.ServiceName)

	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		limiter := ratelimit.NewRedisLimiter(redisClient, logger)
		middlewares.SetRateLimitMiddleware(
			middleware.NewRateLimitMiddleware(limiter, apiMetrics, cfg.RateLimit.Limit, cfg.RateLimit.Period, logger))
		logger.Info("Rate limiting habilitado",
			zap.Int("limit", cfg.RateLimit.Limit),
			zap.Duration("period", cfg.RateLimit.Period))
	}

	return &App{
		Logger:        logger,
		Config:        cfg,
		Repository:    repo,
		HabitService:  habitService,
		HabitHandler:  habitHandler,
		HealthChecker: healthChecker,
		Middleware:    middlewares,
		Cache:         appCache,
		APIMetrics:    apiMetrics,
	}, nil
}

// newCache seleciona a implementação de cache pela configuração, com
// fallback para memória quando o Redis não está acessível
func newCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		logger.Info("Cache desabilitado na configuração")
		return &cache.NoOpCache{}
	}

	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			logger)
		if err == nil {
			return redisCache
		}
		logger.Error("Erro ao conectar ao Redis, usando cache em memória", zap.Error(err))
	}

	return cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute, apiMetrics, logger)
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.IgnoreFavicon())

	if a.Config.Metrics.Enabled {
		router.Use(a.Middleware.Metrics())
		metricsHandler := &middleware.MetricsHandler{Metrics: a.APIMetrics, Logger: a.Logger}
		metricsHandler.RegisterEndpoint(router, a.Config.Metrics.PrometheusPath)
	}

	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	if a.Config.RateLimit.Enabled {
		router.Use(a.Middleware.RateLimit())
	}

	// Health checks
	router.GET("/health", a.HealthChecker.LivenessCheck)
	router.GET("/health/liveness", a.HealthChecker.LivenessCheck)
	router.GET("/health/readiness", a.HealthChecker.ReadinessCheck)

	// Recurso de hábitos
	habits := router.Group("/habit")
	{
		habits.GET("", a.HabitHandler.ListHabits)
		habits.POST("", a.HabitHandler.CreateHabit)
		habits.GET("/:id", a.HabitHandler.GetHabit)
		habits.PUT("/:id", a.HabitHandler.UpdateHabit)
		habits.DELETE("/:id", a.HabitHandler.DeleteHabit)
		habits.POST("/:id/archive", a.HabitHandler.ArchiveHabit)
		habits.POST("/:id/restore", a.HabitHandler.RestoreHabit)
	}
}
