// Package thethacore reads ThethaCore text-based configuration files:
// "key == value" pairs grouped into sections, with a small typed value
// grammar.
//
// # Syntax
//
// A document is a sequence of lines. Blank lines and lines starting with
// "#" or "//" are ignored. Every other line is either a section header
// or a key-value pair; anything else is a syntax error carrying the
// 1-based line number.
//
// A section header is a line wrapped in a single pair of angle brackets.
// Nested sections open further names with '<' inside the brackets; the
// canonical section path joins the names with '/':
//
//	<general>               section "general"
//	<database<advanced>>    section "database/advanced"
//
// Opening a section makes it current for the key-value lines that
// follow. Reopening a section later in the document merges into it;
// existing keys are kept.
//
// A key-value line is an identifier (letters, digits, underscore), the
// "==" marker, and a value token:
//
//	app_name == "TestApp"
//	version == 1.0
//	enabled == True
//	ports == [8080, 8081]
//	limits == { "soft" == 10, "hard" == 20 }
//
// Value tokens are classified in a fixed order: the literals True, False
// and Null (case-sensitive); double-quoted strings (content taken
// verbatim, no escape processing); base-10 signed 64-bit integers;
// 64-bit floats; arrays in brackets; objects in braces. Array elements
// and object pair values are decoded with the same rules, to arbitrary
// nesting. Commas and "==" markers split elements only at nesting depth
// zero, so a comma inside a quoted string or a nested composite does not
// break the enclosing value.
//
// Parsing is all-or-nothing: the first error aborts the parse and no
// partial document is returned. A key-value line before the first
// section header is an error.
//
// # Data structure
//
// Parse and ParseFile return a Document: sections in first-open order,
// each holding its keys in first-assignment order with typed Values.
// Assigning a key again overwrites the value (last write wins).
//
// The Read*Into functions instead set the parsed values into a
// user-defined struct. Each section corresponds to a struct field and
// each variable to a field of the section struct; matching is
// case-insensitive, or explicit with a `thetha:"name"` struct tag. For
// nested sections the config field must be a map with string keys and
// pointer-to-struct values, keyed by the remainder of the section path.
// Parsed data with no corresponding field is reported as a non-fatal
// error; use FatalOnly to ignore it.
//
// # TODO
//
// The following is a list of changes under consideration:
//   - escape sequences inside quoted strings
//   - reporting the column of a failed value token, not just the line
//   - writing documents back out
package thethacore
