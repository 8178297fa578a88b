// Package config loads the editor configuration file. Configuration is a
// single TOML document layered over built-in defaults; keymaps live in
// their own file and are only referenced from here.
package config
