package gotchi

import "database/sql"

// Batch is the result of one enumeration+fetch pass over the owner's gotchis.
// Constructed once per scheduling tick and discarded after use.
//
// AllIDs comes from enumeration alone and is authoritative: every id in it is
// acted upon even when its detail fetch failed. Fetched holds only the claimed
// gotchis whose detail fetch succeeded. SharedLastPet, when valid, is the
// LastInteracted of the FIRST claimed gotchi in enumeration order and is
// applied uniformly to the whole batch for scheduling.
type Batch struct {
	AllIDs        []ID
	Fetched       []*Gotchi
	SharedLastPet sql.NullTime
}
