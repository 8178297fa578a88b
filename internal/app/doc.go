// Package app assembles the editor: configuration, dispatcher, keymap
// watching and the terminal frontend. The event loop runs on one
// goroutine; background producers reach it through the dispatcher's
// message queue and a screen interrupt event.
package app
