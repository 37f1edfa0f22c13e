package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/config"
	"github.com/1SadFox/psyco/internal/service"
	"github.com/1SadFox/psyco/internal/storage"
)

var (
	backendFlag string
	verboseFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "psyco",
		Short:         "Mood journal and self-assessment questionnaires",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&backendFlag, "storage", "", "storage backend override (memory, file, sqlite, redis, postgres)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(moodCmd())
	rootCmd.AddCommand(testCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app agrupa las dependencias compartidas por los subcomandos.
type app struct {
	cfg     *config.Config
	loc     *time.Location
	logger  *zap.Logger
	journal *service.JournalService
	policy  *service.EntryDatePolicy
	close   func()
}

func newApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if backendFlag != "" {
		cfg.StorageBackend = strings.ToLower(strings.TrimSpace(backendFlag))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger := newLogger()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}

	return &app{
		cfg:     cfg,
		loc:     loc,
		logger:  logger,
		journal: service.NewJournalService(store, logger, loc),
		policy:  service.NewEntryDatePolicy(loc, cfg.AllowFutureEntries),
		close: func() {
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}

// newLogger queda en silencio salvo con --verbose, para no mezclar logs con la salida.
func newLogger() *zap.Logger {
	if !verboseFlag {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newEngine(logger *zap.Logger) *service.QuestionnaireEngine {
	return service.NewQuestionnaireEngine(service.MustDefaultCatalog(), logger)
}
