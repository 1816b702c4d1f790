// Package parser reads and decodes 5G harness log files into lines.
package parser

// LogLine is a single decoded log line with surrounding whitespace removed.
type LogLine struct {
	// Content is the trimmed line text.
	Content string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Document is a fully read and decoded log input.
type Document struct {
	// Source is the file path, or "stdin" when read from standard input.
	Source string

	// Size is the number of raw bytes read.
	Size int64

	// Lines holds every decoded line in file order.
	Lines []LogLine
}

// Preview returns the content of the first n lines.
func (d *Document) Preview(n int) []string {
	if n <= 0 || len(d.Lines) == 0 {
		return nil
	}
	if n > len(d.Lines) {
		n = len(d.Lines)
	}
	preview := make([]string, n)
	for i := 0; i < n; i++ {
		preview[i] = d.Lines[i].Content
	}
	return preview
}

// Contents returns all line contents in order.
func (d *Document) Contents() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Content
	}
	return out
}

// LineSource returns a LogSource that yields the document's lines in order.
func (d *Document) LineSource() *LineSource {
	return NewLineSource(d.Lines)
}
