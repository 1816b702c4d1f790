package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DecodeError reports input bytes that are not valid UTF-8 text.
// It is fatal for a run: no lines are returned alongside it.
type DecodeError struct {
	// Line is the 1-based line containing the first invalid sequence.
	Line int

	// Offset is the byte offset of the invalid sequence from the start of the input.
	Offset int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at line %d (byte offset %d)", e.Line, e.Offset)
}

// Decode splits raw input into trimmed lines.
//
// Lines are separated by '\n' only. A trailing newline does not produce an
// extra empty line, and empty input yields no lines. Surrounding whitespace,
// including '\r', is removed from every line.
func Decode(data []byte) ([]LogLine, error) {
	if len(data) == 0 {
		return []LogLine{}, nil
	}

	raw := bytes.SplitAfter(data, []byte{'\n'})
	if len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]LogLine, 0, len(raw))
	var offset int64
	for i, chunk := range raw {
		if !utf8.Valid(chunk) {
			return nil, &DecodeError{
				Line:   i + 1,
				Offset: offset + int64(firstInvalid(chunk)),
			}
		}
		lines = append(lines, LogLine{
			Content: strings.TrimSpace(string(chunk)),
			LineNum: i + 1,
		})
		offset += int64(len(chunk))
	}

	return lines, nil
}

// firstInvalid returns the index of the first invalid UTF-8 sequence in b.
func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
