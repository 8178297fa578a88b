// Package buffer implements text buffers and the registry that owns them.
// Buffers are addressed by opaque IDs so several panes can show the same
// buffer; the registry reference-counts pane attachments and refuses to
// remove a buffer that is still shown somewhere.
package buffer
