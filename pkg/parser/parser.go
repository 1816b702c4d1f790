package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// ErrFileTooLarge is returned when the input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("log file exceeds maximum size")

// ReadFile reads and decodes a whole log file. A path of "-" reads stdin.
// maxSize limits the number of bytes read; zero or negative disables the limit.
func ReadFile(ctx context.Context, path string, maxSize int64) (*Document, error) {
	if path == StdinName {
		return ReadAll(ctx, os.Stdin, "stdin", maxSize)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	return ReadAll(ctx, f, path, maxSize)
}

// ReadAll reads r to the end and decodes it. The whole input is read before
// any line is produced.
func ReadAll(ctx context.Context, r io.Reader, name string, maxSize int64) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrFileTooLarge, maxSize)
	}

	lines, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return &Document{
		Source: name,
		Size:   int64(len(data)),
		Lines:  lines,
	}, nil
}

// LineSource implements LogSource over already decoded lines.
type LineSource struct {
	lines  []LogLine
	index  int
	closed bool
}

// NewLineSource creates a LogSource that yields lines in order.
func NewLineSource(lines []LogLine) *LineSource {
	return &LineSource{lines: lines}
}

// NewStringSource numbers raw strings as lines and wraps them in a LineSource.
// The strings are used as-is.
func NewStringSource(lines []string) *LineSource {
	out := make([]LogLine, len(lines))
	for i, l := range lines {
		out[i] = LogLine{Content: l, LineNum: i + 1}
	}
	return NewLineSource(out)
}

// Next returns the next line, or io.EOF once all lines have been returned.
func (s *LineSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.closed || s.index >= len(s.lines) {
		return nil, io.EOF
	}

	line := &s.lines[s.index]
	s.index++
	return line, nil
}

// Close marks the source exhausted.
func (s *LineSource) Close() error {
	s.closed = true
	return nil
}
