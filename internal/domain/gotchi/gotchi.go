package gotchi

import "time"

// ID is an Aavegotchi token id.
type ID uint64

// Gotchi is a snapshot of one gotchi's on-chain attributes at fetch time.
// It is recreated on every fetch and never mutated in place.
type Gotchi struct {
	ID             ID
	Name           string
	Status         uint8 // nonzero once the portal has been claimed/summoned
	LastInteracted time.Time
	KinshipScore   int64
}

// Claimed reports whether the gotchi is summoned and therefore pettable.
func (g *Gotchi) Claimed() bool {
	return g.Status != 0
}
