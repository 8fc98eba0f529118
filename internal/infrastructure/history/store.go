package history

import (
	"path/filepath"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Open returns the history backend selected by cfg. An empty HistoryFile
// resolves to ~/.aih/history (text) or ~/.aih/history.db (sqlite) under dir.
func Open(cfg domain.Config, dir string) (ports.HistoryRepository, error) {
	path := cfg.Paths.HistoryFile
	backend := cfg.GetHistoryBackend()

	if path == "" {
		name := "history"
		if backend == domain.HistoryBackendSQLite {
			name = "history.db"
		}
		path = filepath.Join(dir, name)
	}

	switch backend {
	case domain.HistoryBackendSQLite:
		return NewSQLiteStore(path, cfg.GetMaxCommandHistory())
	default:
		return NewFileStore(path, cfg.GetMaxCommandHistory()), nil
	}
}
