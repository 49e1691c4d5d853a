package engine

import "github.com/tidwall/btree"

// bookSide is an ordered map from PriorityKey to Order: first-entry is the
// best-priced, earliest-arrived resting order. One instance exists per
// side of the book.
type bookSide struct {
	tree *btree.BTreeG[*Order]
}

func newBookSide() *bookSide {
	return &bookSide{
		tree: btree.NewBTreeG(func(a, b *Order) bool {
			return a.PriorityKey().Less(b.PriorityKey())
		}),
	}
}

// insert places order at its priority key. It fails if an entry already
// sits at that exact key, which the monotonic clock should make
// unreachable (two resting orders on the same side can never share a
// Created timestamp).
func (bs *bookSide) insert(o *Order) error {
	if _, exists := bs.tree.Get(o); exists {
		return errorf(InternalInconsistency, "duplicate book key for order %s", o.ID)
	}
	bs.tree.Set(o)
	return nil
}

// remove deletes the order matching key's PriorityKey, if present.
func (bs *bookSide) remove(key *Order) (*Order, bool) {
	return bs.tree.Delete(key)
}

// walk visits resting orders in priority order (best-first), stopping
// early if fn returns false. Orders filled to zero remaining during a
// single match pass remain in the tree until the caller removes them
// after the walk completes; fn must tolerate that.
func (bs *bookSide) walk(fn func(*Order) bool) {
	for _, o := range bs.tree.Items() {
		if !fn(o) {
			return
		}
	}
}

func (bs *bookSide) len() int {
	return bs.tree.Len()
}
