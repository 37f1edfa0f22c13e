package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1SadFox/psyco/internal/config"
	apihttp "github.com/1SadFox/psyco/internal/http"
	"github.com/1SadFox/psyco/internal/repository"
	"github.com/1SadFox/psyco/internal/service"
	"github.com/1SadFox/psyco/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// storeOpener abre el backend configurado; devuelve la funcion de cierre.
type storeOpener func(context.Context, *config.Config, *zap.Logger) (repository.KVStore, func(), error)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	loc, err := cfg.Location()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, loc, logger, storage.Open)
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run levanta el servidor hasta que ctx se cancela. Los errores se registran y
// se devuelven como codigo de salida para que el cierre del store siempre corra.
func run(ctx context.Context, cfg *config.Config, loc *time.Location, logger *zap.Logger, open storeOpener) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, closeStore, err := open(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage open", zap.String("backend", cfg.StorageBackend), zap.Error(err))
		return 1
	}
	defer closeStore()

	journalSvc := service.NewJournalService(store, logger, loc)
	policy := service.NewEntryDatePolicy(loc, cfg.AllowFutureEntries)
	engine := service.NewQuestionnaireEngine(service.MustDefaultCatalog(), logger)
	registry := service.NewAssessmentRegistry(engine, 0)

	journalHandler := apihttp.NewJournalHandler(logger, journalSvc, policy, loc)
	questionnaireHandler := apihttp.NewQuestionnaireHandler(logger, engine, registry)
	router := apihttp.NewRouter(logger, journalHandler, questionnaireHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("storage", cfg.StorageBackend),
		zap.String("timezone", loc.String()),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
		return 1
	}
	return 0
}
