package engine

import (
	"github.com/google/uuid"
	"github.com/tidwall/btree"
)

// expiryKey orders resting orders by absolute expiry time, with the id as
// a tiebreaker. Keying on the pair (rather than a bare expiry -> id map)
// is what lets two orders share an identical expiry: a plain one-to-one
// map would silently overwrite one entry with the other, and two GTD
// orders whose created+lifetime happen to coincide is a real
// possibility, not an edge case worth ignoring.
type expiryKey struct {
	At int64
	ID uuid.UUID
}

func (k expiryKey) less(other expiryKey) bool {
	if k.At != other.At {
		return k.At < other.At
	}
	return bytesLess(k.ID, other.ID)
}

func bytesLess(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// expiryIndex is the ordered map from expiry time to the set of ids
// expiring at that time, enabling O(log n) range-extraction of all due
// orders.
type expiryIndex struct {
	tree *btree.BTreeG[expiryKey]
}

func newExpiryIndex() *expiryIndex {
	return &expiryIndex{
		tree: btree.NewBTreeG(expiryKey.less),
	}
}

func (ix *expiryIndex) insert(o *Order) {
	ix.tree.Set(expiryKey{At: o.Expiry(), ID: o.ID})
}

func (ix *expiryIndex) remove(o *Order) bool {
	_, deleted := ix.tree.Delete(expiryKey{At: o.Expiry(), ID: o.ID})
	return deleted
}

// due collects, in ascending expiry order, every id whose expiry is <= now,
// stopping at the first entry strictly beyond now.
func (ix *expiryIndex) due(now int64) []uuid.UUID {
	var ids []uuid.UUID
	ix.tree.Scan(func(k expiryKey) bool {
		if k.At > now {
			return false
		}
		ids = append(ids, k.ID)
		return true
	})
	return ids
}
