package stream

import "code.hybscloud.com/kont"

// Erased marks a value whose concrete type is recovered later via a type
// assertion at a fold boundary. Stream's Fold is polymorphic in a carrier S
// chosen by whoever calls Fold; Go has no generic methods, so a Stream
// cannot itself close over S. Every combinator instead threads the carrier
// through as Erased and only the top-level Fold/FoldLazy wrappers — the
// only places that actually know S — assert it back.
//
// This mirrors kont's own Frame/Erased defunctionalization: concrete types
// are erased inside the frame chain and recovered at its boundaries.
type Erased = kont.Erased
