package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// LineReader reads one line at a time without blocking past cancellation.
// A single goroutine performs the reads, and only on request, so it never
// consumes input meant for a command run afterwards.
type LineReader struct {
	in       *bufio.Reader
	requests chan struct{}
	results  chan lineResult
	once     sync.Once
}

// NewLineReader wraps in.
func NewLineReader(in io.Reader) *LineReader {
	return &LineReader{
		in:       bufio.NewReader(in),
		requests: make(chan struct{}),
		results:  make(chan lineResult, 1),
	}
}

// ReadLine returns the next line with surrounding whitespace removed. End of
// input reads as an empty line; cancellation returns ctx.Err().
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { go r.pump() })

	select {
	case r.requests <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case res := <-r.results:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *LineReader) pump() {
	for range r.requests {
		line, err := r.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		r.results <- lineResult{line: strings.TrimSpace(line), err: err}
	}
}
