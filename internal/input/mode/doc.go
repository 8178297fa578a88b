// Package mode implements editor modes and mode management. A mode selects
// which binding partition the dispatcher resolves sequences against and how
// unbound text is treated. The Manager owns transitions, including a mode
// stack so the minibuffer can be pushed over any mode and popped back.
package mode
