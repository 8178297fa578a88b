// Package pane implements the pane layout tree. Leaves show buffers;
// splits divide their rectangle among weighted children. The tree tiles
// its frame exactly, keeps itself normalized so no split has a single
// child, and tracks one focused leaf that directional focus movement and
// mouse hit-testing operate on.
package pane
