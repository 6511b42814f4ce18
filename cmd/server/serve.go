package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ignatzorin/upcycle-backend/internal/config"
	"github.com/ignatzorin/upcycle-backend/internal/db"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/goroutine"
	"github.com/ignatzorin/upcycle-backend/internal/http/router"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/handler"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/service"
	"github.com/ignatzorin/upcycle-backend/internal/storage"
	"github.com/ignatzorin/upcycle-backend/internal/telemetry"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/conversation"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/offer"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/request"
)

// appStore - хранилище, которое умеет и транзакции, и health-check.
type appStore interface {
	repository.UnitOfWork
	handler.Pinger
}

func newServeCommand() *cobra.Command {
	var inMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(commandContext(cmd), inMemory)
		},
	}

	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "Хранить данные в памяти процесса вместо PostgreSQL")
	return cmd
}

func runServer(ctx context.Context, inMemory bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка остановки трассировки")
		}
	}()

	var store appStore
	if inMemory {
		logger.Log.Warn("main: данные хранятся в памяти и пропадут после остановки")
		store = memory.NewStore()
	} else {
		conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer safeClose(conn)

		migrator, err := db.NewMigrator(conn, logger.Log)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
		store = persistence.NewPostgresStore(conn)
	}

	images, mediaRoot, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	maxImageBytes := cfg.MaxUploadSizeMB << 20

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(
			identity.NewRegisterUseCase(store),
			identity.NewLoginUseCase(store, tokens),
		),
		Profile: handler.NewProfileHandler(
			identity.NewGetProfileUseCase(store),
			identity.NewUpdateProfileUseCase(store),
		),
		Request: handler.NewRequestHandler(
			request.NewCreateRequestUseCase(store, images, maxImageBytes),
			request.NewGetRequestUseCase(store),
			request.NewListMyRequestsUseCase(store),
			request.NewListAvailableRequestsUseCase(store),
			request.NewListRequestOffersUseCase(store),
			images,
		),
		Offer: handler.NewOfferHandler(
			offer.NewSubmitOfferUseCase(store, m),
			offer.NewAcceptOfferUseCase(store, m),
			offer.NewRejectOfferUseCase(store, m),
		),
		Conversation: handler.NewConversationHandler(
			conversation.NewListConversationsUseCase(store),
			conversation.NewViewConversationUseCase(store),
			conversation.NewSendMessageUseCase(store, m),
		),
		Health: handler.NewHealthHandler(store),
	}

	engine := router.SetupRouter(cfg, handlers, router.Options{
		Tokens:    tokens,
		Metrics:   m,
		MediaRoot: mediaRoot,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(engine, cfg.ServiceName),
	}

	// Завершаем сервер при получении сигнала.
	stopped := goroutine.Go(ctx, "http-shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"port":      cfg.HTTPPort,
		"env":       cfg.Env,
		"in_memory": inMemory,
		"storage":   cfg.Storage.Driver,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("main: сервер завершился с ошибкой: %w", err)
	}
	// Дожидаемся, пока Shutdown отдаст активные соединения.
	<-stopped
	return nil
}

// newImageStore возвращает хранилище изображений и, для локального диска,
// каталог, который раздаётся как статика.
func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, string, error) {
	switch cfg.Storage.Driver {
	case "s3":
		store, err := storage.NewS3ImageStore(ctx, storage.S3Config{
			Endpoint:       cfg.Storage.S3Endpoint,
			Region:         cfg.Storage.S3Region,
			Bucket:         cfg.Storage.S3Bucket,
			AccessKey:      cfg.Storage.S3AccessKey,
			SecretKey:      cfg.Storage.S3SecretKey,
			ForcePathStyle: cfg.Storage.S3ForcePathStyle,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := storage.NewLocalImageStore(cfg.Storage.LocalPath, cfg.Storage.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Root(), nil
	}
}
