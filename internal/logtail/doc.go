// Package logtail reads the tail of the cart activity journal.
//
// # Reading
//
// Read extracts the last N lines of a file in one pass with a ring buffer,
// so memory stays O(N) however large the journal grows. Records decodes
// those lines into events.Record values and skips any that fail to parse.
// A missing file is not an error; it reads as empty.
//
// # Formatting
//
// Describe turns a record into a single line for the activity pane and the
// `tote events` command. Product ids are resolved through a Namer so the
// line can show "Bananas" instead of "#302".
package logtail
