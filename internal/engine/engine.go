// Package engine implements the deterministic limit-order-book matching
// core: book sides, expiry tracking, the id index, and the per-command
// state machine that applies each incoming order or cancel to them.
package engine

import (
	"github.com/google/uuid"

	"matchcore/internal/common"
)

// Command is one of PlaceLimit, PlaceMarket, Cancel, or Flush.
type Command interface {
	isCommand()
}

// PlaceLimit places a limit order.
type PlaceLimit LimitSpec

// PlaceMarket places a market order.
type PlaceMarket MarketSpec

// Cancel removes a resting order by id. Cancelling an unknown id is a
// no-op, not an error.
type Cancel struct {
	ID uuid.UUID
}

// Flush bulk-removes every resting order whose expiry has elapsed.
type Flush struct{}

func (PlaceLimit) isCommand()  {}
func (PlaceMarket) isCommand() {}
func (Cancel) isCommand()      {}
func (Flush) isCommand()       {}

// Engine is the single-symbol matching engine. It owns the buy and sell
// book sides, the expiry index, and the id index exclusively; nothing
// outside Call ever mutates them, and Call is not safe to call
// concurrently — a multi-producer front end must serialize commands
// itself before handing them to a single Call loop.
type Engine struct {
	buy  *bookSide
	sell *bookSide

	ids    idIndex
	expiry *expiryIndex

	lastTick int64
}

// New constructs an empty engine with last_tick implicitly before any
// valid command timestamp.
func New() *Engine {
	return &Engine{
		buy:    newBookSide(),
		sell:   newBookSide(),
		ids:    make(idIndex),
		expiry: newExpiryIndex(),
	}
}

func (e *Engine) side(s common.Side) *bookSide {
	if s == common.Buy {
		return e.buy
	}
	return e.sell
}

// Call advances the engine's clock to now and applies cmd, returning the
// fills and closed ids it produced. now must be strictly greater than the
// last now passed to Call; every command kind flushes due orders before
// writing, per the uniform flush-before-write policy.
func (e *Engine) Call(now int64, cmd Command) (MatchResult, error) {
	if now <= e.lastTick {
		return MatchResult{}, errorf(NonMonotonicTime,
			"now %d must be greater than last_tick %d", now, e.lastTick)
	}
	e.lastTick = now

	switch c := cmd.(type) {
	case PlaceLimit:
		return e.place(buildLimit(LimitSpec(c), now), now)
	case PlaceMarket:
		return e.place(buildMarket(MarketSpec(c), now), now)
	case Cancel:
		return e.callCancel(c.ID, now)
	case Flush:
		flushed, err := e.flushDue(now)
		if err != nil {
			return MatchResult{}, err
		}
		return MatchResult{Closed: flushed}, nil
	default:
		return MatchResult{}, errorf(InternalInconsistency, "unknown command type %T", cmd)
	}
}

func (e *Engine) place(taker *Order, now int64) (MatchResult, error) {
	flushed, err := e.flushDue(now)
	if err != nil {
		return MatchResult{}, err
	}

	result := e.match(taker)

	for id := range result.Closed {
		if id == taker.ID {
			continue
		}
		if _, err := e.removeResting(id); err != nil {
			return MatchResult{}, err
		}
	}

	if !result.Closed.has(taker.ID) {
		if err := e.insertOrder(taker); err != nil {
			return MatchResult{}, err
		}
	}

	result.Closed.addAll(flushed)
	return result, nil
}

func (e *Engine) callCancel(id uuid.UUID, now int64) (MatchResult, error) {
	flushed, err := e.flushDue(now)
	if err != nil {
		return MatchResult{}, err
	}

	closed := newIDSet()
	removed, err := e.removeResting(id)
	if err != nil {
		return MatchResult{}, err
	}
	if removed {
		closed.add(id)
	}
	closed.addAll(flushed)

	return MatchResult{Closed: closed}, nil
}

// flushDue removes every resting order whose expiry is <= now and returns
// the set of ids removed.
func (e *Engine) flushDue(now int64) (idSet, error) {
	closed := newIDSet()
	for _, id := range e.expiry.due(now) {
		removed, err := e.removeResting(id)
		if err != nil {
			return nil, err
		}
		if removed {
			closed.add(id)
		}
	}
	return closed, nil
}

// insertOrder adds a newly-taken (non-closed) order to its book side, the
// id index, and the expiry index. It rejects a still-live id rather than
// silently clobbering the resting order already using it. This is the
// only place a duplicate id is ever rejected: a fully-filled or IOC
// order is never routed through insertOrder at all, so reusing an id
// that only ever matched and never rested is not an error.
func (e *Engine) insertOrder(o *Order) error {
	if e.ids.has(o.ID) {
		return errorf(DuplicateID, "order id %s is already live", o.ID)
	}
	if err := e.side(o.Side).insert(o); err != nil {
		return err
	}
	e.expiry.insert(o)
	e.ids[o.ID] = locator{side: o.Side, price: o.Price, created: o.Created}
	return nil
}

// removeResting removes a resting order by id from all three structures.
// It returns (false, nil) if the id is not currently resting — a cancel
// of an unknown id is a no-op, not an error — and a non-nil error only if
// the indices have fallen out of sync with each other.
func (e *Engine) removeResting(id uuid.UUID) (bool, error) {
	loc, ok := e.ids[id]
	if !ok {
		return false, nil
	}

	key := &Order{Side: loc.side, Price: loc.price, Created: loc.created}
	removed, found := e.side(loc.side).remove(key)
	if !found {
		return false, errorf(InternalInconsistency,
			"locator present but book entry missing for order %s", id)
	}
	if !e.expiry.remove(removed) {
		return false, errorf(InternalInconsistency,
			"expiry entry missing for order %s", id)
	}
	delete(e.ids, id)
	return true, nil
}
