package terminal

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards bytes.Buffer for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDisabledForNonTerminal(t *testing.T) {
	var out syncBuffer
	stop := NewSpinner(&out).Start("Thinking...")
	time.Sleep(20 * time.Millisecond)
	stop()

	if out.String() != "" {
		t.Fatalf("non-terminal output must stay clean, got %q", out.String())
	}
}

func TestSpinnerStopJoinsAndClears(t *testing.T) {
	var out syncBuffer
	spinner := NewSpinner(&out).ForceEnabled()

	stop := spinner.Start("Thinking...")
	time.Sleep(30 * time.Millisecond)
	stop()

	written := out.String()
	if !strings.Contains(written, "Thinking...") {
		t.Fatalf("expected message in output, got %q", written)
	}
	if !strings.HasSuffix(written, "\r\033[K") {
		t.Fatalf("stop must clear the line before returning, got %q", written)
	}

	after := out.String()
	time.Sleep(30 * time.Millisecond)
	if out.String() != after {
		t.Fatal("spinner goroutine still writing after stop returned")
	}
	stop()
}

func TestSpinnerRestartable(t *testing.T) {
	var out syncBuffer
	spinner := NewSpinner(&out).ForceEnabled()

	for i := 0; i < 3; i++ {
		stop := spinner.Start("round")
		stop()
	}
	if got := strings.Count(out.String(), "\r\033[K"); got != 3 {
		t.Fatalf("expected 3 clean stops, got %d", got)
	}
}
