// Package mode provides language modes for the editor.
//
// A mode couples a row tokenizer with comment toggling. Built-in modes
// are picked by file extension with ForFile; custom modes are written in
// Lua and loaded with LoadLuaFile.
package mode
