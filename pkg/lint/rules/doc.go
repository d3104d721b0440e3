// Package rules provides the built-in style rules for mdstyle.
//
// Every rule is a locator pattern plus a checker constructor. The engine
// scans the document with the locator and feeds each match to a checker
// built fresh for the pass, so rules may keep state (a previous heading
// level, a locked style, a consumed-up-to cursor) without leaking it into
// the next document.
//
// # Catalog
//
// Headings:
//
//   - MD001: heading-increment - Header levels should only increment by one level at a time
//   - MD002: first-heading-h1 - First header should be a h1 header
//   - MD003: heading-style - Header style
//   - MD018: no-missing-space-atx - No space after hash on atx style header
//   - MD019: no-multiple-space-atx - Multiple spaces after hash on atx style header
//   - MD020: no-missing-space-closed-atx - No space inside hashes on closed atx style header
//   - MD021: no-multiple-space-closed-atx - Multiple spaces inside hashes on closed atx style header
//   - MD022: blanks-around-headings - Headers should be surrounded by blank lines
//   - MD023: heading-start-left - Headers must start at the beginning of the line
//   - MD024: no-duplicate-heading - Multiple headers with the same content
//   - MD025: single-h1 - Multiple top level headers in the same document
//   - MD026: no-trailing-punctuation - Trailing punctuation in header
//
// Lists:
//
//   - MD004: ul-style - Unordered list style
//   - MD005: list-indent - Inconsistent indentation for list items at the same level
//   - MD006: ul-start-left - Consider starting bulleted lists at the beginning of the line
//   - MD007: ul-indent - Unordered list indentation
//   - MD029: ol-prefix - Ordered list item prefix
//   - MD030: list-marker-space - Spaces after list markers
//
// Whitespace, links and layout:
//
//   - MD009: no-trailing-spaces - Trailing spaces
//   - MD010: no-hard-tabs - Hard tabs
//   - MD011: no-reversed-links - Reversed link syntax
//   - MD012: no-multiple-blanks - Multiple consecutive blank lines
//   - MD013: line-length - Line length
//   - MD027: no-multiple-space-blockquote - Multiple spaces after blockquote symbol
//   - MD028: no-blanks-blockquote - Blank line inside blockquote
//
// # Registration
//
// Importing the package registers the catalog with lint.DefaultRegistry.
// RegisterAll fills any other registry in the same order.
package rules
