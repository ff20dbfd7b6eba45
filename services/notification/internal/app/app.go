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
	httpapi "github.com/shestoi/GoShopSim/services/notification/internal/api/http"
	"github.com/shestoi/GoShopSim/services/notification/internal/config"
	"github.com/shestoi/GoShopSim/services/notification/internal/service"
	"github.com/shestoi/GoShopSim/services/notification/internal/templates"
)

// App содержит все зависимости для запуска и корректного shutdown Notification Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	readiness   func() bool
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Notification Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	// Создаём logger
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: topology.NotificationService,
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Notification service", zap.String("http_addr", cfg.HTTPAddr))

	// Инициализируем трейсинг
	obsCfg, err := observability.LoadEnv(topology.NotificationService, string(cfg.AppEnv))
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

	// Парсим встроенные шаблоны уведомлений
	renderer, err := templates.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	// Шаблоны встроены, сервис готов сразу после старта
	readiness := func() bool { return true }

	// Создаем service слой с зависимостями
	notificationService := service.NewNotificationService(renderer, logger)

	// Создаем HTTP handler
	handler := httpapi.NewHandler(notificationService, engine, cfg.ServiceVersion, logger)

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

	a.logger.Info("Starting Notification service", zap.String("addr", a.httpServer.Addr))
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
	a.logger.Info("Notification service stopped")
	return nil
}

// loadCatalog загружает каталог сценариев отказов: из YAML файла если задан путь, иначе встроенный
func loadCatalog(cfg config.Config) (errinject.Catalog, error) {
	if cfg.ErrinjectConfig == "" {
		return errinject.Default(), nil
	}
	return errinject.Load(cfg.ErrinjectConfig)
}
