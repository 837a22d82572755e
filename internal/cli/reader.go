package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

type readResult struct {
	err  error
	text string
}

// LineReader hands out input lines to menu prompts. A single goroutine owns
// the underlying reader, so a prompt abandoned on cancellation never races
// the next one for the same bytes.
type LineReader struct {
	src   *bufio.Reader
	lines chan readResult
	start sync.Once
}

// NewLineReader wraps in for context-aware line reads.
func NewLineReader(in io.Reader) *LineReader {
	if in == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{
		src:   bufio.NewReader(in),
		lines: make(chan readResult, 1),
	}
}

func (r *LineReader) pump() {
	defer close(r.lines)
	for {
		text, err := r.src.ReadString('\n')
		r.lines <- readResult{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace trimmed. A final
// line without a newline comes back with a nil error; io.EOF follows once
// nothing is left.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res, ok := <-r.lines:
		switch {
		case !ok:
			return "", io.EOF
		case res.err == nil, errors.Is(res.err, io.EOF) && res.text != "":
			return strings.TrimSpace(res.text), nil
		default:
			return "", res.err
		}
	}
}
