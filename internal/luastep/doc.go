// Package luastep loads step files written in Lua.
//
// Each step chunk runs once with its own environment table, which falls
// back to the shared globals for reads. Whatever the chunk assigns at top
// level (most importantly config) ends up in that table, and the table is
// what the unit exposes. Before the chunk runs it is stored in
// package.loaded under the module identity, and the chunk sees two extra
// globals: _NAME and _PACKAGE. The import helper resolves dotted names
// relative to _PACKAGE:
//
//	local util = import(".util")     -- <package>.util
//	local shared = import("..lib")   -- sibling of <package>
//	local json = import("vendor.json")
package luastep
