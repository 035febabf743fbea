// Package config loads editcore settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML
// or YAML file chosen by extension, and EDITCORE_* environment variables.
// Watch reloads the file through fsnotify when it changes on disk.
package config
