// Package dispatcher is the editor's control loop core. It owns the key
// sequence accumulator, the mode manager, the buffer registry and the pane
// tree, and turns each incoming key chord into applied editing operations.
// Background goroutines reach it only through the message queue, which is
// drained before every key so editor state mutates on a single thread.
package dispatcher
