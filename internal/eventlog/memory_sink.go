package eventlog

import "strings"

// MemorySink collects appended lines in memory. Used by tests and by
// any caller that wants the raw event stream without touching disk.
type MemorySink struct {
	Lines []string
}

func (s *MemorySink) Write(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}

// String joins the collected lines the way they would appear in a
// file: one per line, newline-terminated.
func (s *MemorySink) String() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}
