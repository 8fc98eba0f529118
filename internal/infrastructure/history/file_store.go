package history

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"sync"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
	"github.com/doeshing/aih-go/internal/ports"
)

// FileStore keeps the command log as a plain text file, one
// "<timestamp> $ <command>" line per entry, holding at most max lines.
type FileStore struct {
	path string
	max  int
	mu   sync.Mutex
}

// NewFileStore creates a store at path bounded to max entries (0 = unbounded).
func NewFileStore(path string, max int) *FileStore {
	return &FileStore{path: path, max: max}
}

// Append adds entry and drops the oldest lines beyond the bound. The file is
// replaced atomically, so an interrupted write leaves the previous log intact.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLines()
	if err != nil {
		return err
	}
	lines = append(lines, entry.Line())
	if f.max > 0 && len(lines) > f.max {
		lines = lines[len(lines)-f.max:]
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return filesystem.WriteFileAtomic(f.path, buf.Bytes(), domain.FilePermissions)
}

// Entries returns the newest limit entries in chronological order. Lines that
// do not parse are skipped.
func (f *FileStore) Entries(limit int) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLines()
	if err != nil {
		return nil, err
	}
	var entries []domain.HistoryEntry
	for _, line := range lines {
		entry, err := domain.ParseHistoryLine(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return domain.TrimHistory(entries, limit), nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) readLines() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

var _ ports.HistoryRepository = (*FileStore)(nil)
