// Package apexdoc normalizes ApexDoc comments and formats the code embedded
// in their {@code ...} blocks.
//
// A comment goes through one fixed pipeline:
//
//	Normalize → Tokenize (code blocks carved out) → DetectAnnotations →
//	NormalizeAnnotations → FormatCodeBlocks (concurrent) → Render
//
// Every stage except FormatCodeBlocks is synchronous and pure. Code blocks
// are handed to a Host, which owns the Apex snippet formatter; the Host
// and the per-run code-block Cache travel in a Context, so nothing here
// keeps global state.
package apexdoc
