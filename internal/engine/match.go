package engine

import "matchcore/internal/common"

// match walks the opposite side of the book in priority order against
// taker, generating fills until the taker is exhausted or the book stops
// crossing. taker is not yet resting in any book side. The caller is
// responsible for removing any maker in the returned result's Closed set
// from the book and indices, and for inserting taker if its id is not in
// Closed.
func (e *Engine) match(taker *Order) MatchResult {
	result := emptyResult()
	opposite := e.side(taker.Side.Other())

	opposite.walk(func(maker *Order) bool {
		if !crosses(taker, maker) {
			return false
		}

		traded := taker.Remaining
		if maker.Remaining.LessThan(traded) {
			traded = maker.Remaining
		}

		result.Fills = append(result.Fills, Fill{
			BaseAmount: traded,
			Price:      maker.Price,
			MakerID:    maker.ID,
			TakerID:    taker.ID,
		})

		taker.Remaining = taker.Remaining.Sub(traded)
		maker.Remaining = maker.Remaining.Sub(traded)

		if taker.Remaining.IsZero() {
			result.Closed.add(taker.ID)
		}
		if maker.Remaining.IsZero() {
			result.Closed.add(maker.ID)
		}

		return true
	})

	if taker.TIF.Kind == common.IOC {
		result.Closed.add(taker.ID)
	}

	return result
}
