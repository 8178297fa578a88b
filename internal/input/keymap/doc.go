// Package keymap implements the mode-partitioned binding table that maps
// key sequences to actions, and the resolver that classifies a sequence as
// an exact match, a prefix of longer bindings, ambiguous (both), or unbound.
//
// Tables are built once from a declarative binding list, loaded either from
// the built-in defaults or from TOML/YAML keymap files, and are read-only
// during input processing. Rebinding builds a replacement table (optionally
// driven by a file watcher) which the owner swaps in between key events.
package keymap
