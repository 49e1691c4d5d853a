package engine

import "matchcore/internal/money"

// PriorityKey is the composite book-ordering key: natural ascending order
// of the pair equals matching priority. See Order.PriorityKey for how the
// effective price folds side into a single ascending comparator.
type PriorityKey struct {
	EffectivePrice money.Decimal
	Created        int64
}

// Less reports whether k sorts strictly before other: by effective price
// first, then by earliest Created (strict FIFO within a price level).
func (k PriorityKey) Less(other PriorityKey) bool {
	if c := k.EffectivePrice.Cmp(other.EffectivePrice); c != 0 {
		return c < 0
	}
	return k.Created < other.Created
}
