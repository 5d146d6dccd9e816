// Package replay decodes the event log wire format (see
// internal/eventlog) and replays it into a fresh engine.Book. It is
// the inverse of eventlog's serializer: an observer of a well-formed
// stream, not a producer. A line with an unknown command, a wrong
// field count, or an unparsable field stops the replay with an error;
// nothing is recovered. Commands the engine rejects are skipped
// silently, and missing lines go undetected because sequence numbers
// are discarded.
//
// Replay takes an io.Reader, never a path: opening the log file is a
// driver concern, kept out of this package.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ZaneH/order-book-v1/internal/engine"
	"github.com/ZaneH/order-book-v1/internal/types"
)

// Replay tokenizes each line of r, discards the leading sequence
// number (an observer field, not an input), and dispatches the
// command to the corresponding entry point on b. Returns the number
// of commands replayed.
func Replay(r io.Reader, b *engine.Book) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := replayLine(line, b); err != nil {
			return count, fmt.Errorf("replay line %d (%q): %w", count+1, line, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	return count, nil
}

func replayLine(line string, b *engine.Book) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("too few fields")
	}
	// fields[0] is the sequence number; it is an observer field and is
	// discarded here, not fed back into the engine.
	command := fields[1]
	args := fields[2:]

	switch command {
	case "ADDLIMIT":
		return replayAddLimit(args, b)
	case "ADDMARKET":
		return replayAddMarket(args, b)
	case "CANCEL":
		return replayCancel(args, b)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func replayAddLimit(args []string, b *engine.Book) error {
	if len(args) != 5 {
		return fmt.Errorf("ADDLIMIT wants 5 fields, got %d", len(args))
	}
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	side, err := parseSide(args[1])
	if err != nil {
		return err
	}
	qty, err := parseQuantity(args[2])
	if err != nil {
		return err
	}
	price, err := parsePrice(args[3])
	if err != nil {
		return err
	}
	tif, err := parseTIF(args[4])
	if err != nil {
		return err
	}
	_, _, _ = b.AddLimit(userID, side, price, qty, tif)
	return nil
}

func replayAddMarket(args []string, b *engine.Book) error {
	if len(args) != 3 {
		return fmt.Errorf("ADDMARKET wants 3 fields, got %d", len(args))
	}
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	side, err := parseSide(args[1])
	if err != nil {
		return err
	}
	qty, err := parseQuantity(args[2])
	if err != nil {
		return err
	}
	_, _, _ = b.AddMarket(userID, side, qty)
	return nil
}

func replayCancel(args []string, b *engine.Book) error {
	if len(args) != 1 {
		return fmt.Errorf("CANCEL wants 1 field, got %d", len(args))
	}
	orderID, err := parseUint32(args[0])
	if err != nil {
		return err
	}
	b.Cancel(types.OrderId(orderID))
	return nil
}

func parseUserID(s string) (types.UserId, error) {
	v, err := parseUint32(s)
	return types.UserId(v), err
}

func parseQuantity(s string) (types.Quantity, error) {
	v, err := parseUint32(s)
	return types.Quantity(v), err
}

func parsePrice(s string) (types.Price, error) {
	v, err := parseUint32(s)
	return types.Price(v), err
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseSide(s string) (types.Side, error) {
	switch s {
	case "BUY":
		return types.Buy, nil
	case "SELL":
		return types.Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q", s)
	}
}

func parseTIF(s string) (types.TimeInForce, error) {
	switch s {
	case "GTC":
		return types.GTC, nil
	case "IOC":
		return types.IOC, nil
	default:
		return 0, fmt.Errorf("invalid time-in-force %q", s)
	}
}
