package contextcollector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/pkg/filesystem"
	"github.com/doeshing/aih-go/internal/ports"
)

// Collector gathers the environment context block: working directory, git
// status and the tail of the shell history. Results are cached per working
// directory so regenerate rounds within one session reuse them.
type Collector struct {
	workDir     string
	historyFile string
	gitTimeout  time.Duration
	cache       *ttlcache.Cache[string, string]
	logger      ports.Logger
}

// Options overrides the collector's sources. Zero values use the process
// working directory and $HISTFILE (or ~/.bash_history).
type Options struct {
	WorkDir     string
	HistoryFile string
	TTL         time.Duration
}

// NewCollector builds a collector.
func NewCollector(opts Options, logger ports.Logger) *Collector {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = domain.EnvironmentCacheTTL
	}
	return &Collector{
		workDir:     opts.WorkDir,
		historyFile: opts.HistoryFile,
		gitTimeout:  domain.DefaultCommandTimeout,
		cache: ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](ttl),
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
		logger: logger,
	}
}

// Collect implements ports.EnvironmentCollector. Missing git or history is
// not an error; the corresponding section is left out.
func (c *Collector) Collect(ctx context.Context) (string, error) {
	wd, err := c.resolveWorkDir()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	if item := c.cache.Get(wd); item != nil {
		return item.Value(), nil
	}

	parts := []string{"Current directory: " + wd}
	if status := c.gitStatus(ctx, wd); status != "" {
		parts = append(parts, "Git status:\n"+status)
	}
	if recent := c.recentHistory(); recent != "" {
		parts = append(parts, "Recent history:\n"+recent)
	}

	block := strings.Join(parts, "\n\n")
	c.cache.Set(wd, block, ttlcache.DefaultTTL)
	return block, nil
}

func (c *Collector) resolveWorkDir() (string, error) {
	if c.workDir != "" {
		return c.workDir, nil
	}
	return os.Getwd()
}

func (c *Collector) gitStatus(ctx context.Context, dir string) string {
	ctx, cancel := context.WithTimeout(ctx, c.gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "status", "-s", "-b")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		c.debug("git status unavailable", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (c *Collector) recentHistory() string {
	path := c.historyFile
	if path == "" {
		path = os.Getenv("HISTFILE")
	}
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".bash_history")
	}

	lines, err := tailLines(filesystem.ExpandPath(path), domain.RecentShellHistoryLines)
	if err != nil {
		c.debug("shell history unavailable", err)
		return ""
	}
	for i, line := range lines {
		lines[i] = RedactCommand(stripZshTimestamp(line))
	}
	return strings.Join(lines, "\n")
}

func (c *Collector) debug(msg string, err error) {
	if c.logger != nil {
		c.logger.Debug(msg, map[string]interface{}{"error": err.Error()})
	}
}

// tailLines returns the last n non-empty lines of path.
func tailLines(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(ring) == n {
			ring = append(ring[1:], line)
			continue
		}
		ring = append(ring, line)
	}
	return ring, scanner.Err()
}

// stripZshTimestamp drops the ": <epoch>:<duration>;" prefix written by
// zsh's EXTENDED_HISTORY option.
func stripZshTimestamp(line string) string {
	if !strings.HasPrefix(line, ": ") {
		return line
	}
	if idx := strings.IndexByte(line, ';'); idx > 0 {
		return line[idx+1:]
	}
	return line
}

var _ ports.EnvironmentCollector = (*Collector)(nil)
