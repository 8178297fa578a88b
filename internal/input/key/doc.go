// Package key defines the normalized representation of keyboard input:
// chords (one key press with its modifier set) and sequences (ordered lists
// of chords accumulated toward a binding). It also parses the specification
// strings used by keymap files, supporting both "Ctrl+S" and "<C-s>" forms.
//
// Chords are immutable values with modifier-order-independent equality, so
// they can be used directly as map keys in binding tables.
package key
