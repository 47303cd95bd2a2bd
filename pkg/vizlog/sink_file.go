package vizlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink appends entries to a JSON-lines file, one entry per line.
type FileSink struct {
	file *os.File
	w    *bufio.Writer
	enc  *json.Encoder
}

// NewFileSink creates (or truncates) the recording file, creating
// parent directories as needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating recording directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording file: %w", err)
	}
	w := bufio.NewWriter(f)
	return &FileSink{file: f, w: w, enc: json.NewEncoder(w)}, nil
}

// Write appends one entry line.
func (s *FileSink) Write(entry Entry) error {
	return s.enc.Encode(entry)
}

// Close flushes buffered entries and closes the file.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
