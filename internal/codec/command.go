// Package codec implements the line-based, comma-separated command and
// result wire protocol. It is a thin collaborator by design: it never
// decides matching semantics, only translates text to and from the
// engine's Command/MatchResult types.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"matchcore/internal/common"
	"matchcore/internal/engine"
	"matchcore/internal/money"
)

// ErrParse is returned, wrapped with context, for any malformed line.
// This is always fatal — the caller is expected to surface it and
// terminate the process rather than attempt local recovery.
var ErrParse = fmt.Errorf("parse error")

// Timed pairs a parsed command with the timestamp it arrived at.
type Timed struct {
	Now int64
	Cmd engine.Command
}

// ParseLine parses one input line into a timestamped command.
//
//	<now>,limit,<uuid>,<side>,<amount>,<price>,<tif>[,<lifetime_ns>]
//	<now>,market,<uuid>,<side>,<amount>
//	<now>,cancel,<uuid>
//	<now>,flush
func ParseLine(line string) (Timed, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return Timed{}, parseErrorf("line too short: %q", line)
	}

	now, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Timed{}, parseErrorf("invalid timestamp %q: %v", fields[0], err)
	}

	kind := fields[1]
	rest := fields[2:]

	var cmd engine.Command
	switch kind {
	case "limit":
		cmd, err = parseLimit(rest)
	case "market":
		cmd, err = parseMarket(rest)
	case "cancel":
		cmd, err = parseCancel(rest)
	case "flush":
		cmd, err = parseFlush(rest)
	default:
		err = parseErrorf("unknown command kind %q", kind)
	}
	if err != nil {
		return Timed{}, err
	}

	return Timed{Now: now, Cmd: cmd}, nil
}

func parseLimit(fields []string) (engine.Command, error) {
	if len(fields) < 5 {
		return nil, parseErrorf("limit: expected at least 5 fields, got %d", len(fields))
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return nil, parseErrorf("limit: invalid uuid %q: %v", fields[0], err)
	}
	side, err := common.ParseSide(fields[1])
	if err != nil {
		return nil, parseErrorf("limit: %v", err)
	}
	amount, err := money.Parse(fields[2])
	if err != nil {
		return nil, parseErrorf("limit: invalid amount %q: %v", fields[2], err)
	}
	price, err := money.Parse(fields[3])
	if err != nil {
		return nil, parseErrorf("limit: invalid price %q: %v", fields[3], err)
	}
	tif, err := parseTIF(fields[4:])
	if err != nil {
		return nil, err
	}
	return engine.PlaceLimit{ID: id, Side: side, Amount: amount, Price: price, TIF: tif}, nil
}

func parseMarket(fields []string) (engine.Command, error) {
	if len(fields) < 3 {
		return nil, parseErrorf("market: expected at least 3 fields, got %d", len(fields))
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return nil, parseErrorf("market: invalid uuid %q: %v", fields[0], err)
	}
	side, err := common.ParseSide(fields[1])
	if err != nil {
		return nil, parseErrorf("market: %v", err)
	}
	amount, err := money.Parse(fields[2])
	if err != nil {
		return nil, parseErrorf("market: invalid amount %q: %v", fields[2], err)
	}
	return engine.PlaceMarket{ID: id, Side: side, Amount: amount}, nil
}

func parseCancel(fields []string) (engine.Command, error) {
	if len(fields) < 1 {
		return nil, parseErrorf("cancel: expected a uuid")
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return nil, parseErrorf("cancel: invalid uuid %q: %v", fields[0], err)
	}
	return engine.Cancel{ID: id}, nil
}

func parseFlush(fields []string) (engine.Command, error) {
	return engine.Flush{}, nil
}

func parseTIF(fields []string) (common.TimeInForce, error) {
	if len(fields) < 1 {
		return common.TimeInForce{}, parseErrorf("missing time-in-force")
	}
	switch fields[0] {
	case "IOC":
		return common.NewIOC(), nil
	case "GTC":
		return common.NewGTC(), nil
	case "GTD":
		if len(fields) < 2 {
			return common.TimeInForce{}, parseErrorf("GTD requires a lifetime_ns field")
		}
		lifetime, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return common.TimeInForce{}, parseErrorf("GTD: invalid lifetime_ns %q: %v", fields[1], err)
		}
		if lifetime < 1 {
			return common.TimeInForce{}, parseErrorf("GTD: lifetime_ns must be >= 1, got %d", lifetime)
		}
		return common.NewGTD(lifetime), nil
	default:
		return common.TimeInForce{}, parseErrorf("invalid time-in-force %q", fields[0])
	}
}

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
