package app

import "time"

// BotState holds the process-wide pet sitter counters. It lives for the
// process lifetime and is mutated only from scheduler tick callbacks, which
// never overlap (single active tick at a time).
type BotState struct {
	Running bool
	// TotalPets counts verified successful pet submissions.
	TotalPets int64
	// TotalErrors counts tick and submission failures. Verification
	// ambiguity and per-gotchi fetch failures are deliberately excluded.
	TotalErrors int64
	// OptimisticVerifies counts verifications that aborted and were assumed
	// successful. Kept as its own counter so operators can see how often the
	// optimistic policy kicks in.
	OptimisticVerifies int64
	LastPetAt          time.Time
	NextPetAt          time.Time
	OwnerAddress       string
}
