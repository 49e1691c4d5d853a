package engine

import (
	"github.com/google/uuid"

	"matchcore/internal/common"
	"matchcore/internal/money"
)

// Order is an immutable set of order attributes plus a single mutable
// field, Remaining. Every other field is fixed at construction; mutating
// anything but Remaining after the fact is an invariant violation.
type Order struct {
	ID      uuid.UUID
	Side    common.Side
	Created int64 // ns, strictly increasing across orders in one engine
	Amount  money.Decimal
	Price   money.Decimal
	TIF     common.TimeInForce

	Remaining money.Decimal
}

// LimitSpec describes a limit order to place.
type LimitSpec struct {
	ID     uuid.UUID
	Side   common.Side
	Amount money.Decimal
	Price  money.Decimal
	TIF    common.TimeInForce
}

// MarketSpec describes a market order to place. Market orders are built
// as limit orders with a synthetic price and IOC time-in-force, which
// collapses market handling into the single limit-matching path.
type MarketSpec struct {
	ID     uuid.UUID
	Side   common.Side
	Amount money.Decimal
}

// buildLimit constructs a resting-eligible Order from a LimitSpec.
func buildLimit(spec LimitSpec, now int64) *Order {
	return &Order{
		ID:        spec.ID,
		Side:      spec.Side,
		Created:   now,
		Amount:    spec.Amount,
		Price:     spec.Price,
		TIF:       spec.TIF,
		Remaining: spec.Amount,
	}
}

// buildMarket constructs an IOC Order with the synthetic market price:
// +unbounded for a buy (crosses any ask), zero for a sell (crosses any
// bid).
func buildMarket(spec MarketSpec, now int64) *Order {
	price := money.Zero
	if spec.Side == common.Buy {
		price = money.MaxPrice
	}
	return &Order{
		ID:        spec.ID,
		Side:      spec.Side,
		Created:   now,
		Amount:    spec.Amount,
		Price:     price,
		TIF:       common.NewIOC(),
		Remaining: spec.Amount,
	}
}

// Expiry is the absolute nanosecond timestamp at which a resting order
// becomes stale and eligible for flush.
func (o *Order) Expiry() int64 {
	return o.Created + o.TIF.Lifetime()
}

// PriorityKey is the book-ordering key: natural ascending order of the
// pair equals matching priority. Sell orders sort by ascending price;
// buy orders sort by descending price (encoded by negating it), with
// ties broken by earliest Created (strict FIFO within a price level).
func (o *Order) PriorityKey() PriorityKey {
	effective := o.Price
	if o.Side == common.Buy {
		effective = effective.Neg()
	}
	return PriorityKey{EffectivePrice: effective, Created: o.Created}
}

// crosses reports whether the taker's limit price crosses the maker's.
func crosses(taker, maker *Order) bool {
	if taker.Remaining.IsZero() {
		return false
	}
	switch taker.Side {
	case common.Buy:
		return taker.Price.Cmp(maker.Price) >= 0
	default:
		return taker.Price.Cmp(maker.Price) <= 0
	}
}
