package vizlog

// MemorySink retains entries in memory. Used in tests and for
// inspecting what a traversal produced.
type MemorySink struct {
	entries []Entry
	closed  bool
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write retains the entry.
func (s *MemorySink) Write(entry Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

// Close marks the sink closed.
func (s *MemorySink) Close() error {
	s.closed = true
	return nil
}

// Entries returns everything written so far.
func (s *MemorySink) Entries() []Entry {
	return s.entries
}

// Closed reports whether Close was called.
func (s *MemorySink) Closed() bool {
	return s.closed
}

// ForPath returns the entries logged for one entity path, in order.
func (s *MemorySink) ForPath(path string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Path == path {
			out = append(out, e)
		}
	}
	return out
}
