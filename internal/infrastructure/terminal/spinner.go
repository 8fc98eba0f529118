package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner displays an animated spinner during long operations. It
// implements ports.Indicator: every Start launches one goroutine and the
// returned stop function joins it before returning.
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	enabled  bool
	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner creates a spinner writing to w. Animation is enabled only when
// w is a terminal.
func NewSpinner(w io.Writer) *Spinner {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = term.IsTerminal(int(f.Fd()))
	}
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		writer:   w,
		enabled:  enabled,
	}
}

// ForceEnabled turns animation on regardless of the writer type.
func (s *Spinner) ForceEnabled() *Spinner {
	s.enabled = true
	return s
}

// Start begins the animation with message and returns its stop function.
// Calling stop more than once is safe.
func (s *Spinner) Start(message string) (stop func()) {
	if !s.enabled {
		return func() {}
	}

	s.mu.Lock()
	if s.stopChan != nil {
		s.mu.Unlock()
		return func() {}
	}
	done := make(chan struct{})
	s.stopChan = done
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		idx := 0
		for {
			fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], message)
			idx++
			select {
			case <-done:
				// Clear the spinner line
				fmt.Fprint(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			s.wg.Wait()
			s.mu.Lock()
			s.stopChan = nil
			s.mu.Unlock()
		})
	}
}
