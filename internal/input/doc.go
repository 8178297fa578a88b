// Package input implements the key sequence accumulator: it converts the
// stream of individual key chords into sequences, resolves them against the
// active binding table, and reports each step as incomplete, complete,
// ambiguous, cancelled or unmatched. A chord that invalidates a pending
// sequence is never dropped; it restarts accumulation as a fresh sequence.
package input
