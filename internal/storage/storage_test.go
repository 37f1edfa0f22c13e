package storage

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/config"
)

func TestOpen_LocalBackends(t *testing.T) {
	dir := t.TempDir()
	cases := []config.Config{
		{StorageBackend: config.BackendMemory},
		{StorageBackend: config.BackendFile, StoragePath: filepath.Join(dir, "files")},
		{StorageBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "db", "psyco.db")},
	}
	for _, cfg := range cases {
		cfg := cfg
		t.Run(cfg.StorageBackend, func(t *testing.T) {
			store, closeFn, err := Open(context.Background(), &cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer closeFn()

			if err := store.Set("moodEntries", "[]"); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, ok, err := store.Get("moodEntries")
			if err != nil || !ok || got != "[]" {
				t.Fatalf("get: %q %v %v", got, ok, err)
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, closeFn, err := Open(context.Background(), &config.Config{StorageBackend: "tape"}, nil); err == nil || closeFn == nil {
		t.Fatalf("expected error and non-nil close for unknown backend")
	}
	if _, _, err := Open(context.Background(), &config.Config{StorageBackend: config.BackendFile}, nil); err == nil {
		t.Fatalf("expected error for file backend without path")
	}
	if _, _, err := Open(context.Background(), &config.Config{StorageBackend: config.BackendPostgres}, nil); err == nil {
		t.Fatalf("expected error for postgres backend without url")
	}
}
