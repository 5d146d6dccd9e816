// Package eventlog implements the append-only command log: a
// monotonic sequence counter plus a textual serializer for the three
// admitted-mutation event kinds, writing to a caller-supplied sink.
//
// Each line is a space-separated token list: the sequence number, the
// command name, and the command's fields in declaration order. A
// replay decoder can tokenize a line without a parser generator.
package eventlog

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/ZaneH/order-book-v1/internal/types"
)

// Sink is the engine's opaque event destination. The engine borrows it
// for its lifetime and writes synchronously; it never buffers,
// flushes, or closes it — that is the sink's concern.
type Sink interface {
	Write(line string) error
}

// Log stamps each appended event with a monotonic sequence number
// starting at 0 and writes it as one line to the sink.
type Log struct {
	sink Sink
	seq  uint64
}

// New returns a Log appending to sink.
func New(sink Sink) *Log {
	return &Log{sink: sink}
}

// EventSeq returns the count of events appended so far.
func (l *Log) EventSeq() uint64 { return l.seq }

// AppendAddLimit logs an ADDLIMIT command.
func (l *Log) AppendAddLimit(userID types.UserId, side types.Side, qty types.Quantity, price types.Price, tif types.TimeInForce) {
	l.append(fmt.Sprintf("ADDLIMIT %d %s %d %d %s", userID, side, qty, price, tif))
}

// AppendAddMarket logs an ADDMARKET command.
func (l *Log) AppendAddMarket(userID types.UserId, side types.Side, qty types.Quantity) {
	l.append(fmt.Sprintf("ADDMARKET %d %s %d", userID, side, qty))
}

// AppendCancel logs a CANCEL command.
func (l *Log) AppendCancel(orderID types.OrderId) {
	l.append(fmt.Sprintf("CANCEL %d", orderID))
}

func (l *Log) append(body string) {
	line := fmt.Sprintf("%d %s", l.seq, body)
	l.seq++
	// I/O errors are not propagated through the engine's public
	// methods; a sink failure is the caller's concern, not the book's.
	_ = l.sink.Write(line)
}

// WriterSink adapts an io.Writer (e.g. a file or bytes.Buffer) into a
// Sink, appending a trailing newline per line. Safe for a writer goroutine
// and a periodic flusher goroutine to share.
type WriterSink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewWriterSink wraps w for buffered line writes.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Flush flushes any buffered output. The engine never calls this
// itself; it is a collaborator operation for whoever owns the sink.
func (s *WriterSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Flush()
}
