// Package command implements the named commands behind run-command. Go
// code registers commands directly; user extensions are Lua scripts,
// loaded from a directory and run in an isolated interpreter with a small
// editor API bound as globals.
package command
