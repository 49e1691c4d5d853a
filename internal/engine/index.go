package engine

import (
	"github.com/google/uuid"

	"matchcore/internal/common"
	"matchcore/internal/money"
)

// locator recovers a resting order's book position in O(1): which side
// it's on, and its PriorityKey (price, created) within that side.
type locator struct {
	side    common.Side
	price   money.Decimal
	created int64
}

// idIndex is the hash map from order id to its locator, the thing that
// makes cancel and duplicate-id checks O(1) instead of a book scan.
type idIndex map[uuid.UUID]locator

func (ix idIndex) has(id uuid.UUID) bool {
	_, ok := ix[id]
	return ok
}
