// Package diag defines the diagnostic model shared by the lexer, the host
// formatter and the comment pipeline.
//
// Diagnostics are plain data: severity, a stable numeric code, a short
// message and the primary source span. Producers emit through a Reporter so
// they stay decoupled from storage; BagReporter collects them into a Bag,
// which the driver sorts and hands to the CLI for rendering.
//
// Recoverable formatting problems (an embedded {@code} snippet that does not
// parse, for example) are warnings. They never stop a file from formatting.
package diag
