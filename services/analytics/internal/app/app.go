package app

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/GoShopSim/platform/errinject"
	platformlogging "github.com/shestoi/GoShopSim/platform/logging"
	"github.com/shestoi/GoShopSim/platform/observability"
	platformshutdown "github.com/shestoi/GoShopSim/platform/shutdown"
	"github.com/shestoi/GoShopSim/platform/topology"
	httpapi "github.com/shestoi/GoShopSim/services/analytics/internal/api/http"
	"github.com/shestoi/GoShopSim/services/analytics/internal/config"
	"github.com/shestoi/GoShopSim/services/analytics/internal/repository/memory"
	"github.com/shestoi/GoShopSim/services/analytics/internal/service"
)

// App содержит все зависимости для запуска и корректного shutdown Analytics Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	readiness   func() bool
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Analytics Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	// Создаём logger
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: topology.AnalyticsService,
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Analytics service", zap.String("http_addr", cfg.HTTPAddr))

	// Инициализируем трейсинг
	obsCfg, err := observability.LoadEnv(topology.AnalyticsService, string(cfg.AppEnv))
	if err != nil {
		return nil, err
	}
	obsShutdown, err := observability.Init(context.Background(), obsCfg)
	if err != nil {
		return nil, err
	}

	// Загружаем каталог сценариев отказов
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	engine := errinject.New(catalog, nil)

	// In-memory хранилище событий
	eventRepo := memory.NewRepository()

	// Хранилище в памяти, сервис готов сразу после старта
	readiness := func() bool { return true }

	// Создаем service слой с зависимостями
	analyticsService := service.NewAnalyticsService(eventRepo, logger)

	// Создаем HTTP handler
	handler := httpapi.NewHandler(analyticsService, engine, cfg.ServiceVersion, logger)

	// Настраиваем роутер
	router := httpapi.NewRouter(handler, cfg.ServiceVersion, readiness, logger)

	// Создаём HTTP сервер
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Создаём shutdown manager
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	// Регистрируем shutdown функции в обратном порядке выполнения
	shutdownMgr.Add("observability", obsShutdown)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
		readiness:   readiness,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Analytics service", zap.String("addr", a.httpServer.Addr))
	a.logger.Info("Health check available", zap.String("url", "http://"+a.httpServer.Addr+"/health"))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Analytics service stopped")
	return nil
}

// loadCatalog загружает каталог сценариев отказов: из YAML файла если задан путь, иначе встроенный
func loadCatalog(cfg config.Config) (errinject.Catalog, error) {
	if cfg.ErrinjectConfig == "" {
		return errinject.Default(), nil
	}
	return errinject.Load(cfg.ErrinjectConfig)
}
