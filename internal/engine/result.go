package engine

import (
	"sort"

	"github.com/google/uuid"

	"matchcore/internal/money"
)

// Fill records one trade produced during matching. Price is always the
// resting (maker) order's price — the standard price-improvement rule —
// never the taker's.
type Fill struct {
	BaseAmount money.Decimal
	Price      money.Decimal
	MakerID    uuid.UUID
	TakerID    uuid.UUID
}

// idSet is a set of order ids, used so that an id added to Closed twice in
// the same command (e.g. an IOC taker closed both by the size-equality
// branch and by the unconditional IOC post-step) naturally dedupes.
type idSet map[uuid.UUID]struct{}

func newIDSet() idSet { return make(idSet) }

func (s idSet) add(id uuid.UUID) { s[id] = struct{}{} }

func (s idSet) has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) addAll(other idSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// MatchResult is what Engine.Call returns for a single command: the fills
// produced, in match-emission (price-time) order, and the set of order
// ids that are no longer live after the command.
type MatchResult struct {
	Fills  []Fill
	Closed idSet
}

func emptyResult() MatchResult {
	return MatchResult{Closed: newIDSet()}
}

// SortedClosed returns Closed as a slice sorted by id, the order the
// result codec is required to emit closed lines in for byte-exact replay
// comparison.
func (r MatchResult) SortedClosed() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Closed))
	for id := range r.Closed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytesLess(ids[i], ids[j])
	})
	return ids
}
