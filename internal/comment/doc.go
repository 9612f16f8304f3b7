// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package comment extracts documentation comments from source text and parses
// their tags into typed commands.
//
// Two comment forms are recognized: blocks opened by "/**" and closed by "*/",
// and single lines starting with "///". Inside a block, a leading "*" (plus one
// space) is stripped from every line.
//
// Tags follow this grammar, one line each unless noted:
//
//	@author text
//	@brief text
//	@class Name
//	@description text (or @desc; continues until the next tag)
//	@event name [text]
//	@example ... @endexample (verbatim, multi-line)
//	@extends ClassName
//	@file name
//	@function name [text] (or @fn)
//	@library name
//	@memberof ClassName (or @memberOf)
//	@method name
//	@page title
//	@param dataType name [text]
//	@property dataType name [text]
//	@return dataType [text] (or @returns)
//	@see text
//	@todo text
//	@version text
package comment
